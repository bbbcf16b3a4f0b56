package lifecycle

import (
	"classifier-backend/internal/blobstore"
	"classifier-backend/internal/core"
	"classifier-backend/internal/core/types"
	"classifier-backend/internal/registry"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BlobClient interface {
	DownloadBlobs(ctx context.Context, container string, numberOfBlobs int) ([]types.Blob, error)

	BlobToModel(ctx context.Context, modelId, container string) blobstore.Result[core.Model]

	ModelToBlob(ctx context.Context, model core.Model, modelId, container string) error
}

type Preprocessor interface {
	CreateTrainingData(blobs []types.Blob) (core.TrainingData, error)
}

type Config struct {
	DataContainer   string
	ModelsContainer string
}

// ModelInfo describes the model held in a registry slot. Nil metadata fields
// are unknown for that slot.
type ModelInfo struct {
	ModelType   string
	LastTrained *time.Time
	SamplesUsed *int
}

type TrainingResult struct {
	Message     string
	ModelType   string
	SamplesUsed *int
}

type Option func(*Manager)

// WithClock overrides the source of training timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager runs the train, activate, export and status workflows against a
// registry it does not own.
type Manager struct {
	registry      *registry.Registry
	blobs         BlobClient
	preprocessor  Preprocessor
	newClassifier core.ClassifierFactory
	cfg           Config
	now           func() time.Time
}

func NewManager(reg *registry.Registry, blobs BlobClient, preprocessor Preprocessor, newClassifier core.ClassifierFactory, cfg Config, opts ...Option) (*Manager, error) {
	if cfg.DataContainer == "" {
		return nil, errors.New("data container name is required")
	}
	if cfg.ModelsContainer == "" {
		return nil, errors.New("models container name is required")
	}
	if reg == nil || blobs == nil || preprocessor == nil || newClassifier == nil {
		return nil, errors.New("registry, blob client, preprocessor and classifier factory are required")
	}

	m := &Manager{
		registry:      reg,
		blobs:         blobs,
		preprocessor:  preprocessor,
		newClassifier: newClassifier,
		cfg:           cfg,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ParseSampleCount converts a caller supplied sample count, which must be a
// positive integer.
func ParseSampleCount(raw string) (int, error) {
	samples, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: sample count '%s' is not an integer", ErrInvalidInput, raw)
	}
	if samples < 1 {
		return 0, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidInput, samples)
	}
	return samples, nil
}

func (m *Manager) TrainCurrent(ctx context.Context, sampleCount int) (res TrainingResult, err error) {
	defer func() { recordOutcome("train_current", err) }()

	if sampleCount < 1 {
		return TrainingResult{}, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidInput, sampleCount)
	}

	blobs, err := m.blobs.DownloadBlobs(ctx, m.cfg.DataContainer, sampleCount)
	if err != nil {
		slog.Error("error downloading training blobs", "container", m.cfg.DataContainer, "error", err)
		return TrainingResult{}, fmt.Errorf("%w: %w", ErrBlobFetch, err)
	}
	if len(blobs) == 0 {
		slog.Error("no training blobs found", "container", m.cfg.DataContainer)
		return TrainingResult{}, fmt.Errorf("%w: container '%s' returned no data", ErrBlobFetch, m.cfg.DataContainer)
	}

	data, err := m.preprocessor.CreateTrainingData(blobs)
	if err != nil {
		slog.Error("error preprocessing training blobs", "error", err)
		return TrainingResult{}, fmt.Errorf("%w: %w", ErrTraining, err)
	}

	classifier := m.newClassifier()
	if err := classifier.Train(data); err != nil {
		slog.Error("error training classifier", "model_type", classifier.Type(), "error", err)
		return TrainingResult{}, fmt.Errorf("%w: %w", ErrTraining, err)
	}

	record := registry.ModelRecord{
		Classifier:       classifier,
		LastTrainTimeUTC: m.now().UTC(),
		SamplesUsed:      len(blobs),
	}
	m.registry.SetTrained(record)
	trainedSamples.Observe(float64(record.SamplesUsed))

	slog.Info("trained model", "model_type", classifier.Type(), "samples_requested", sampleCount, "samples_used", record.SamplesUsed)

	return TrainingResult{
		Message:     "Successfully trained model",
		ModelType:   core.TypeName(classifier),
		SamplesUsed: &record.SamplesUsed,
	}, nil
}

func (m *Manager) ActivatePickled(ctx context.Context, modelId string) (res TrainingResult, err error) {
	defer func() { recordOutcome("activate_pickled", err) }()

	if strings.TrimSpace(modelId) == "" {
		return TrainingResult{}, fmt.Errorf("%w: model id is required", ErrInvalidInput)
	}

	model, err := m.blobs.BlobToModel(ctx, modelId, m.cfg.ModelsContainer).Unwrap()
	if err != nil {
		slog.Error("error activating model", "model_id", modelId, "container", m.cfg.ModelsContainer, "error", err)
		return TrainingResult{}, fmt.Errorf("%w: %w", ErrModelActivation, err)
	}

	m.registry.SetPickled(model)

	slog.Info("activated model", "model_id", modelId, "model_type", model.Type())

	return TrainingResult{
		Message:   "Successfully activated model",
		ModelType: core.TypeName(model),
	}, nil
}

func (m *Manager) CurrentModelInfo() (ModelInfo, error) {
	record, ok := m.registry.Trained()
	if !ok {
		return ModelInfo{}, ErrNotTrained
	}

	return ModelInfo{
		ModelType:   core.TypeName(record.Classifier),
		LastTrained: &record.LastTrainTimeUTC,
		SamplesUsed: &record.SamplesUsed,
	}, nil
}

func (m *Manager) PickledModelInfo() (ModelInfo, error) {
	model, ok := m.registry.Pickled()
	if !ok {
		return ModelInfo{}, ErrNotActivated
	}

	return ModelInfo{ModelType: core.TypeName(model)}, nil
}

// Export writes the model in slot to the models container so it can be
// activated later. A random id is used when modelId is empty.
func (m *Manager) Export(ctx context.Context, slot registry.Slot, modelId string) (id string, err error) {
	defer func() { recordOutcome("export", err) }()

	var model core.Model
	switch slot {
	case registry.TrainedModelSlot:
		record, ok := m.registry.Trained()
		if !ok {
			return "", ErrNotTrained
		}
		model = record.Classifier
	case registry.PickledModelSlot:
		pickled, ok := m.registry.Pickled()
		if !ok {
			return "", ErrNotActivated
		}
		model = pickled
	default:
		return "", fmt.Errorf("%w: unknown slot '%s'", ErrInvalidInput, slot)
	}

	if modelId == "" {
		modelId = uuid.New().String()
	}

	if err := m.blobs.ModelToBlob(ctx, model, modelId, m.cfg.ModelsContainer); err != nil {
		slog.Error("error exporting model", "model_id", modelId, "slot", slot, "error", err)
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}

	slog.Info("exported model", "model_id", modelId, "slot", slot, "model_type", model.Type())
	return modelId, nil
}
