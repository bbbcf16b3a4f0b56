package api

import (
	"classifier-backend/internal/lifecycle"
	"classifier-backend/pkg/api"
	"errors"
	"net/http"
	"strconv"
	"time"
)

func formatTime(t *time.Time) string {
	if t == nil {
		return api.Unknown
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatCount(n *int) string {
	if n == nil {
		return api.Unknown
	}
	return strconv.Itoa(*n)
}

func convertModelInfo(info lifecycle.ModelInfo) api.ModelInfo {
	return api.ModelInfo{
		ModelType:   info.ModelType,
		LastTrained: formatTime(info.LastTrained),
		SamplesUsed: formatCount(info.SamplesUsed),
	}
}

func convertTrainingResult(res lifecycle.TrainingResult) api.TrainingResult {
	return api.TrainingResult{
		TrainingResult: res.Message,
		TrainedModel:   res.ModelType,
		SamplesUsed:    formatCount(res.SamplesUsed),
	}
}

// convertLifecycleError maps lifecycle failures onto HTTP statuses.
func convertLifecycleError(err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidInput):
		return CodedError(http.StatusBadRequest, err)
	case errors.Is(err, lifecycle.ErrNotTrained):
		return CodedErrorf(http.StatusNotFound, "No trained model found. Train model first.")
	case errors.Is(err, lifecycle.ErrNotActivated):
		return CodedErrorf(http.StatusNotFound, "No activated model found. Activate pickled model first.")
	case errors.Is(err, lifecycle.ErrBlobFetch):
		return CodedErrorf(http.StatusInternalServerError, "Failed to connect to blob storage. %v", err)
	case errors.Is(err, lifecycle.ErrModelActivation):
		return CodedErrorf(http.StatusInternalServerError, "Failed to download model from blob storage. %v", err)
	default:
		return CodedError(http.StatusInternalServerError, err)
	}
}
