package lifecycle

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var workflowRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "model_lifecycle_workflow_runs_total",
		Help: "Total number of lifecycle workflow runs by outcome.",
	},
	[]string{"workflow", "outcome"},
)

var trainedSamples = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "model_lifecycle_training_samples",
		Help:    "Number of samples used by successful training runs.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	},
)

func init() {
	prometheus.MustRegister(workflowRuns)
	prometheus.MustRegister(trainedSamples)
}

var outcomes = []struct {
	err   error
	label string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrBlobFetch, "blob_fetch_error"},
	{ErrTraining, "training_error"},
	{ErrModelActivation, "activation_error"},
	{ErrNotTrained, "not_trained"},
	{ErrNotActivated, "not_activated"},
	{ErrExport, "export_error"},
}

func recordOutcome(workflow string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		for _, o := range outcomes {
			if errors.Is(err, o.err) {
				outcome = o.label
				break
			}
		}
	}
	workflowRuns.WithLabelValues(workflow, outcome).Inc()
}
