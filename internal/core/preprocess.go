package core

import (
	"classifier-backend/internal/core/types"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Preprocessor turns raw sample blobs into a training dataset. Every blob must
// hold one JSON encoded types.Sample and all samples must share a dimension.
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

func (p *Preprocessor) CreateTrainingData(blobs []types.Blob) (TrainingData, error) {
	if len(blobs) == 0 {
		return TrainingData{}, errors.New("no blobs to preprocess")
	}

	data := TrainingData{
		Features: make([][]float64, 0, len(blobs)),
		Labels:   make([]string, 0, len(blobs)),
	}

	dim := -1
	for _, blob := range blobs {
		var sample types.Sample
		if err := json.Unmarshal(blob.Data, &sample); err != nil {
			return TrainingData{}, fmt.Errorf("blob '%s' is not a valid sample: %w", blob.Name, err)
		}

		if len(sample.Features) == 0 {
			return TrainingData{}, fmt.Errorf("blob '%s' has no features", blob.Name)
		}
		if dim == -1 {
			dim = len(sample.Features)
		} else if len(sample.Features) != dim {
			return TrainingData{}, fmt.Errorf("blob '%s' has %d features, expected %d", blob.Name, len(sample.Features), dim)
		}

		label := strings.TrimSpace(sample.Label)
		if label == "" {
			return TrainingData{}, fmt.Errorf("blob '%s' has no label", blob.Name)
		}

		data.Features = append(data.Features, sample.Features)
		data.Labels = append(data.Labels, label)
	}

	return data, nil
}
