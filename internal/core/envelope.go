package core

import (
	"encoding/json"
	"fmt"
)

// modelEnvelope is the on-disk format of a pickled model blob.
type modelEnvelope struct {
	Type  ModelType       `json:"type"`
	Model json.RawMessage `json:"model"`
}

func EncodeModel(model Model) ([]byte, error) {
	state, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("error serializing %s model: %w", model.Type(), err)
	}

	data, err := json.Marshal(modelEnvelope{Type: model.Type(), Model: state})
	if err != nil {
		return nil, fmt.Errorf("error serializing model envelope: %w", err)
	}
	return data, nil
}

func DecodeModel(data []byte, loaders map[ModelType]ModelLoader) (Model, error) {
	var envelope modelEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("error parsing model envelope: %w", err)
	}

	if envelope.Type == "" {
		return nil, fmt.Errorf("model envelope is missing the model type")
	}

	loader, ok := loaders[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported model type '%s'", envelope.Type)
	}

	if len(envelope.Model) == 0 {
		return nil, fmt.Errorf("model envelope for type '%s' has no model state", envelope.Type)
	}

	model, err := loader(envelope.Model)
	if err != nil {
		return nil, fmt.Errorf("error loading %s model: %w", envelope.Type, err)
	}
	return model, nil
}
