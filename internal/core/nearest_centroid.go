package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// NearestCentroidClassifier predicts the label whose mean feature vector is
// closest, by squared euclidean distance, to the input.
type NearestCentroidClassifier struct {
	Labels    []string    `json:"labels"`
	Centroids [][]float64 `json:"centroids"`
}

var _ Trainable = (*NearestCentroidClassifier)(nil)

func LoadNearestCentroid(state json.RawMessage) (*NearestCentroidClassifier, error) {
	var model NearestCentroidClassifier
	if err := json.Unmarshal(state, &model); err != nil {
		return nil, fmt.Errorf("error decoding nearest centroid state: %w", err)
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

func (m *NearestCentroidClassifier) Type() ModelType {
	return NearestCentroid
}

func (m *NearestCentroidClassifier) validate() error {
	if len(m.Labels) == 0 {
		return errors.New("nearest centroid model has no labels")
	}
	if len(m.Labels) != len(m.Centroids) {
		return fmt.Errorf("nearest centroid model has %d labels but %d centroids", len(m.Labels), len(m.Centroids))
	}
	dim := len(m.Centroids[0])
	if dim == 0 {
		return errors.New("nearest centroid model has empty centroids")
	}
	for i, c := range m.Centroids {
		if len(c) != dim {
			return fmt.Errorf("centroid %d has dimension %d, expected %d", i, len(c), dim)
		}
	}
	return nil
}

func (m *NearestCentroidClassifier) Train(data TrainingData) error {
	if data.Len() == 0 {
		return errors.New("training data is empty")
	}
	if len(data.Features) != data.Len() {
		return fmt.Errorf("training data has %d feature rows but %d labels", len(data.Features), data.Len())
	}

	dim := data.Dim()
	sums := make(map[string][]float64)
	counts := make(map[string]int)
	for i, row := range data.Features {
		if len(row) != dim {
			return fmt.Errorf("row %d has dimension %d, expected %d", i, len(row), dim)
		}
		label := data.Labels[i]
		if sums[label] == nil {
			sums[label] = make([]float64, dim)
		}
		for j, v := range row {
			sums[label][j] += v
		}
		counts[label]++
	}

	labels := make([]string, 0, len(sums))
	for label := range sums {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	centroids := make([][]float64, len(labels))
	for i, label := range labels {
		centroid := sums[label]
		for j := range centroid {
			centroid[j] /= float64(counts[label])
		}
		centroids[i] = centroid
	}

	m.Labels = labels
	m.Centroids = centroids
	return nil
}

func (m *NearestCentroidClassifier) Predict(features []float64) (string, error) {
	if len(m.Centroids) == 0 {
		return "", ErrNotTrained
	}
	if len(features) != len(m.Centroids[0]) {
		return "", fmt.Errorf("expected %d features, got %d", len(m.Centroids[0]), len(features))
	}

	best, bestDist := 0, math.Inf(1)
	for i, centroid := range m.Centroids {
		dist := 0.0
		for j, v := range centroid {
			d := features[j] - v
			dist += d * d
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return m.Labels[best], nil
}
