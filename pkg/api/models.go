package api

const Unknown = "unknown"

type ModelInfo struct {
	ModelType   string `json:"model_type"`
	LastTrained string `json:"last_trained"`
	SamplesUsed string `json:"samples_used"`
}

type TrainingResult struct {
	TrainingResult string `json:"training_result"`
	TrainedModel   string `json:"trained_model"`
	SamplesUsed    string `json:"samples_used"`
}

type ExportParams struct {
	ModelId string `schema:"model_id"`
	Source  string `schema:"source"`
}

type ExportResult struct {
	ModelId string `json:"model_id"`
	Source  string `json:"source"`
}
