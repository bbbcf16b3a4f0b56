package api

import (
	"classifier-backend/internal/lifecycle"
	"classifier-backend/internal/registry"
	"classifier-backend/pkg/api"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Lifecycle interface {
	TrainCurrent(ctx context.Context, sampleCount int) (lifecycle.TrainingResult, error)

	ActivatePickled(ctx context.Context, modelId string) (lifecycle.TrainingResult, error)

	CurrentModelInfo() (lifecycle.ModelInfo, error)

	PickledModelInfo() (lifecycle.ModelInfo, error)

	Export(ctx context.Context, slot registry.Slot, modelId string) (string, error)
}

type ModelService struct {
	lifecycle Lifecycle
}

func NewModelService(lc Lifecycle) *ModelService {
	return &ModelService{lifecycle: lc}
}

func (s *ModelService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Route("/model", func(r chi.Router) {
		for _, suffix := range []string{"", "/"} {
			r.Get("/current"+suffix, RestHandler(s.CurrentModel))
			r.Get("/pickled"+suffix, RestHandler(s.PickledModel))
			r.Put("/train_current/{training_samples}"+suffix, RestHandler(s.TrainCurrent))
			r.Put("/activate_pickled/{model_id}"+suffix, RestHandler(s.ActivatePickled))
			r.Put("/export"+suffix, RestHandler(s.Export))
		}
	})
}

func (s *ModelService) CurrentModel(r *http.Request) (any, error) {
	info, err := s.lifecycle.CurrentModelInfo()
	if err != nil {
		return nil, convertLifecycleError(err)
	}
	return convertModelInfo(info), nil
}

func (s *ModelService) PickledModel(r *http.Request) (any, error) {
	info, err := s.lifecycle.PickledModelInfo()
	if err != nil {
		return nil, convertLifecycleError(err)
	}
	return convertModelInfo(info), nil
}

func (s *ModelService) TrainCurrent(r *http.Request) (any, error) {
	raw, err := URLParam(r, "training_samples")
	if err != nil {
		return nil, err
	}

	samples, err := lifecycle.ParseSampleCount(raw)
	if err != nil {
		return nil, convertLifecycleError(err)
	}

	res, err := s.lifecycle.TrainCurrent(r.Context(), samples)
	if err != nil {
		return nil, convertLifecycleError(err)
	}
	return convertTrainingResult(res), nil
}

func (s *ModelService) ActivatePickled(r *http.Request) (any, error) {
	modelId, err := URLParam(r, "model_id")
	if err != nil {
		return nil, err
	}

	res, err := s.lifecycle.ActivatePickled(r.Context(), modelId)
	if err != nil {
		return nil, convertLifecycleError(err)
	}
	return convertTrainingResult(res), nil
}

var exportSources = map[string]registry.Slot{
	"":        registry.TrainedModelSlot,
	"trained": registry.TrainedModelSlot,
	"pickled": registry.PickledModelSlot,
}

func (s *ModelService) Export(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[api.ExportParams](r)
	if err != nil {
		return nil, err
	}

	slot, ok := exportSources[params.Source]
	if !ok {
		return nil, CodedErrorf(http.StatusBadRequest, "invalid source '%s': expected 'trained' or 'pickled'", params.Source)
	}

	if params.ModelId != "" {
		if err := validateModelId(params.ModelId); err != nil {
			return nil, err
		}
	}

	modelId, err := s.lifecycle.Export(r.Context(), slot, params.ModelId)
	if err != nil {
		return nil, convertLifecycleError(err)
	}

	source := params.Source
	if source == "" {
		source = "trained"
	}
	return api.ExportResult{ModelId: modelId, Source: source}, nil
}
