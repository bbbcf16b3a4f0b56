package api_test

import (
	"bytes"
	backend "classifier-backend/internal/api"
	"classifier-backend/internal/blobstore"
	"classifier-backend/internal/core"
	"classifier-backend/internal/lifecycle"
	"classifier-backend/internal/registry"
	"classifier-backend/internal/storage"
	"classifier-backend/pkg/api"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dataContainer   = "data"
	modelsContainer = "models"
)

func createProvider(t *testing.T, samples int) *storage.LocalProvider {
	t.Helper()
	provider, err := storage.NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, provider.CreateBucket(ctx, dataContainer))
	require.NoError(t, provider.CreateBucket(ctx, modelsContainer))
	for i := 0; i < samples; i++ {
		sample := fmt.Sprintf(`{"features": [%d, %d], "label": "class-%d"}`, i, 10-i, i%2)
		require.NoError(t, provider.PutObject(ctx, dataContainer, fmt.Sprintf("sample-%03d.json", i), strings.NewReader(sample)))
	}
	return provider
}

func createRouter(t *testing.T, provider storage.Provider) chi.Router {
	t.Helper()
	manager, err := lifecycle.NewManager(
		registry.New(),
		blobstore.NewClient(provider, core.NewModelLoaders()),
		core.NewPreprocessor(),
		core.NewClassifierFactories()[core.NearestCentroid],
		lifecycle.Config{DataContainer: dataContainer, ModelsContainer: modelsContainer},
	)
	require.NoError(t, err)

	service := backend.NewModelService(manager)
	router := chi.NewRouter()
	service.AddRoutes(router)
	return router
}

func doRequest(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), "recieved response: "+rec.Body.String())
	return res
}

func TestHealth(t *testing.T) {
	router := createRouter(t, createProvider(t, 0))

	rec := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestModelInfoBeforeTraining(t *testing.T) {
	router := createRouter(t, createProvider(t, 0))

	rec := doRequest(router, http.MethodGet, "/model/current/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No trained model found. Train model first.")

	rec = doRequest(router, http.MethodGet, "/model/pickled/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No activated model found.")
}

func TestTrainCurrent(t *testing.T) {
	router := createRouter(t, createProvider(t, 5))

	rec := doRequest(router, http.MethodPut, "/model/train_current/5/")
	require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
	assert.Equal(t, api.TrainingResult{
		TrainingResult: "Successfully trained model",
		TrainedModel:   "*core.NearestCentroidClassifier",
		SamplesUsed:    "5",
	}, decode[api.TrainingResult](t, rec))

	rec = doRequest(router, http.MethodGet, "/model/current/")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[api.ModelInfo](t, rec)
	assert.Equal(t, "*core.NearestCentroidClassifier", info.ModelType)
	assert.Equal(t, "5", info.SamplesUsed)
	assert.NotEqual(t, api.Unknown, info.LastTrained)
	_, err := time.Parse(time.RFC3339Nano, info.LastTrained)
	assert.NoError(t, err)
}

func TestTrainCurrentFewerBlobsThanRequested(t *testing.T) {
	router := createRouter(t, createProvider(t, 3))

	rec := doRequest(router, http.MethodPut, "/model/train_current/100")
	require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
	assert.Equal(t, "3", decode[api.TrainingResult](t, rec).SamplesUsed)

	rec = doRequest(router, http.MethodGet, "/model/current")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", decode[api.ModelInfo](t, rec).SamplesUsed)
}

func TestTrainCurrentHugeSampleCount(t *testing.T) {
	router := createRouter(t, createProvider(t, 3))

	for _, count := range []string{"1000000000000", "9000000000000000000"} {
		rec := doRequest(router, http.MethodPut, "/model/train_current/"+count+"/")
		require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
		assert.Equal(t, "3", decode[api.TrainingResult](t, rec).SamplesUsed)
	}
}

func TestTrainCurrentInvalidSamples(t *testing.T) {
	router := createRouter(t, createProvider(t, 3))

	for _, samples := range []string{"abc", "0", "-1", "1.5"} {
		rec := doRequest(router, http.MethodPut, "/model/train_current/"+samples+"/")
		assert.Equal(t, http.StatusBadRequest, rec.Code, samples)
	}

	rec := doRequest(router, http.MethodGet, "/model/current/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrainCurrentEmptyContainer(t *testing.T) {
	router := createRouter(t, createProvider(t, 0))

	rec := doRequest(router, http.MethodPut, "/model/train_current/5/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to connect to blob storage.")

	rec = doRequest(router, http.MethodGet, "/model/current/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrainCurrentBadSample(t *testing.T) {
	provider := createProvider(t, 2)
	require.NoError(t, provider.PutObject(context.Background(), dataContainer, "sample-000.json", strings.NewReader("not a sample")))
	router := createRouter(t, provider)

	rec := doRequest(router, http.MethodPut, "/model/train_current/2/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "sample-000.json")
}

func uploadModel(t *testing.T, provider storage.Provider, modelId string, model core.Model) {
	t.Helper()
	data, err := core.EncodeModel(model)
	require.NoError(t, err)
	require.NoError(t, provider.PutObject(context.Background(), modelsContainer, modelId, bytes.NewReader(data)))
}

func TestActivatePickled(t *testing.T) {
	provider := createProvider(t, 0)
	uploadModel(t, provider, "model-1", &core.MajorityClassClassifier{Label: "spam", Counts: map[string]int{"spam": 3}})
	uploadModel(t, provider, "model-2", &core.NearestCentroidClassifier{Labels: []string{"a"}, Centroids: [][]float64{{1, 2}}})
	require.NoError(t, provider.PutObject(context.Background(), modelsContainer, "corrupt", strings.NewReader("{")))
	router := createRouter(t, provider)

	rec := doRequest(router, http.MethodPut, "/model/activate_pickled/model-1/")
	require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
	assert.Equal(t, api.TrainingResult{
		TrainingResult: "Successfully activated model",
		TrainedModel:   "*core.MajorityClassClassifier",
		SamplesUsed:    api.Unknown,
	}, decode[api.TrainingResult](t, rec))

	rec = doRequest(router, http.MethodGet, "/model/pickled/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.ModelInfo{
		ModelType:   "*core.MajorityClassClassifier",
		LastTrained: api.Unknown,
		SamplesUsed: api.Unknown,
	}, decode[api.ModelInfo](t, rec))

	rec = doRequest(router, http.MethodPut, "/model/activate_pickled/model-2/")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, bad := range []string{"missing", "corrupt"} {
		rec = doRequest(router, http.MethodPut, "/model/activate_pickled/"+bad+"/")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to download model from blob storage.")
	}

	rec = doRequest(router, http.MethodGet, "/model/pickled/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*core.NearestCentroidClassifier", decode[api.ModelInfo](t, rec).ModelType)

	// Activation leaves the trained slot alone.
	rec = doRequest(router, http.MethodGet, "/model/current/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportThenActivate(t *testing.T) {
	router := createRouter(t, createProvider(t, 4))

	rec := doRequest(router, http.MethodPut, "/model/export/?model_id=snapshot")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodPut, "/model/train_current/4/")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPut, "/model/export/?model_id=snapshot&source=trained")
	require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
	assert.Equal(t, api.ExportResult{ModelId: "snapshot", Source: "trained"}, decode[api.ExportResult](t, rec))

	rec = doRequest(router, http.MethodPut, "/model/activate_pickled/snapshot/")
	require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
	assert.Equal(t, "*core.NearestCentroidClassifier", decode[api.TrainingResult](t, rec).TrainedModel)

	rec = doRequest(router, http.MethodPut, "/model/export/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[api.ExportResult](t, rec).ModelId)
}

func TestExportInvalidParams(t *testing.T) {
	router := createRouter(t, createProvider(t, 0))

	for _, query := range []string{"?source=other", "?model_id=../escape", "?unknown=1"} {
		rec := doRequest(router, http.MethodPut, "/model/export/"+query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestNewRouter(t *testing.T) {
	manager, err := lifecycle.NewManager(
		registry.New(),
		blobstore.NewClient(createProvider(t, 1), core.NewModelLoaders()),
		core.NewPreprocessor(),
		core.NewClassifierFactories()[core.MajorityClass],
		lifecycle.Config{DataContainer: dataContainer, ModelsContainer: modelsContainer},
	)
	require.NoError(t, err)
	router := backend.NewRouter(backend.NewModelService(manager), time.Minute)

	rec := doRequest(router, http.MethodPut, "/model/train_current/1/")
	require.Equal(t, http.StatusOK, rec.Code, "recieved response: "+rec.Body.String())
	assert.Equal(t, "*core.MajorityClassClassifier", decode[api.TrainingResult](t, rec).TrainedModel)

	rec = doRequest(router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "model_api_http_requests_total")
	assert.Contains(t, rec.Body.String(), "model_lifecycle_workflow_runs_total")
}
