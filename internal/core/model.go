package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ModelType identifies a classifier implementation in serialized model envelopes.
type ModelType string

// Available model types
const (
	NearestCentroid ModelType = "nearest_centroid"
	MajorityClass   ModelType = "majority_class"
)

var ErrNotTrained = errors.New("model has not been trained")

type Model interface {
	Type() ModelType

	Predict(features []float64) (string, error)
}

// Trainable is a Model that can be fit in place on a training dataset.
type Trainable interface {
	Model

	Train(data TrainingData) error
}

type ModelLoader func(state json.RawMessage) (Model, error)

type ClassifierFactory func() Trainable

func NewModelLoaders() map[ModelType]ModelLoader {
	return map[ModelType]ModelLoader{
		NearestCentroid: func(state json.RawMessage) (Model, error) {
			return LoadNearestCentroid(state)
		},
		MajorityClass: func(state json.RawMessage) (Model, error) {
			return LoadMajorityClass(state)
		},
	}
}

func NewClassifierFactories() map[ModelType]ClassifierFactory {
	return map[ModelType]ClassifierFactory{
		NearestCentroid: func() Trainable { return &NearestCentroidClassifier{} },
		MajorityClass:   func() Trainable { return &MajorityClassClassifier{} },
	}
}

func ClassifierFactoryFor(modelType ModelType) (ClassifierFactory, error) {
	factory, ok := NewClassifierFactories()[modelType]
	if !ok {
		return nil, fmt.Errorf("unsupported classifier type '%s'", modelType)
	}
	return factory, nil
}

// TypeName is the runtime type of a model as reported by the status endpoints.
func TypeName(model any) string {
	return fmt.Sprintf("%T", model)
}
