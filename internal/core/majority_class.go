package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MajorityClassClassifier always predicts the most frequent training label.
// Ties go to the lexically smallest label.
type MajorityClassClassifier struct {
	Label  string         `json:"label"`
	Counts map[string]int `json:"counts"`
}

var _ Trainable = (*MajorityClassClassifier)(nil)

func LoadMajorityClass(state json.RawMessage) (*MajorityClassClassifier, error) {
	var model MajorityClassClassifier
	if err := json.Unmarshal(state, &model); err != nil {
		return nil, fmt.Errorf("error decoding majority class state: %w", err)
	}
	if model.Label == "" {
		return nil, errors.New("majority class model has no label")
	}
	return &model, nil
}

func (m *MajorityClassClassifier) Type() ModelType {
	return MajorityClass
}

func (m *MajorityClassClassifier) Train(data TrainingData) error {
	if data.Len() == 0 {
		return errors.New("training data is empty")
	}

	counts := make(map[string]int)
	for _, label := range data.Labels {
		counts[label]++
	}

	best := ""
	for label, count := range counts {
		if best == "" || count > counts[best] || (count == counts[best] && label < best) {
			best = label
		}
	}

	m.Label = best
	m.Counts = counts
	return nil
}

func (m *MajorityClassClassifier) Predict(features []float64) (string, error) {
	if m.Label == "" {
		return "", ErrNotTrained
	}
	return m.Label, nil
}
