package blobstore

import (
	"bytes"
	"classifier-backend/internal/core"
	"classifier-backend/internal/core/types"
	"classifier-backend/internal/core/utils"
	"classifier-backend/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const defaultDownloadWorkers = 8

// Client downloads training samples and pickled models from blob containers.
type Client struct {
	provider storage.Provider
	loaders  map[core.ModelType]core.ModelLoader
	workers  int
}

func NewClient(provider storage.Provider, loaders map[core.ModelType]core.ModelLoader) *Client {
	return &Client{provider: provider, loaders: loaders, workers: defaultDownloadWorkers}
}

// DownloadBlobs fetches up to numberOfBlobs objects from container in key
// order. Objects that fail to download are skipped and logged, so fewer blobs
// than requested may be returned; an error is returned only when the container
// cannot be listed or nothing at all could be downloaded.
func (c *Client) DownloadBlobs(ctx context.Context, container string, numberOfBlobs int) ([]types.Blob, error) {
	if numberOfBlobs <= 0 {
		return nil, fmt.Errorf("number of blobs must be positive, got %d", numberOfBlobs)
	}

	// numberOfBlobs is caller controlled, the listing bounds the slice.
	var keys []string
	for obj, err := range c.provider.IterObjects(ctx, container, "") {
		if err != nil {
			return nil, fmt.Errorf("error listing container '%s': %w", container, err)
		}
		keys = append(keys, obj.Name)
		if len(keys) == numberOfBlobs {
			break
		}
	}

	if len(keys) == 0 {
		return nil, nil
	}

	download := func(key string) (types.Blob, error) {
		data, err := c.provider.GetObject(ctx, container, key)
		if err != nil {
			return types.Blob{}, err
		}
		return types.Blob{Name: key, Data: data}, nil
	}

	downloaded := make([]*types.Blob, len(keys))
	var errs []error
	for task := range utils.RunInPool(download, keys, c.workers) {
		if task.Error != nil {
			slog.Error("failed to download blob", "container", container, "key", keys[task.Index], "error", task.Error)
			errs = append(errs, task.Error)
			continue
		}
		downloaded[task.Index] = &task.Result
	}

	blobs := make([]types.Blob, 0, len(keys))
	for _, blob := range downloaded {
		if blob != nil {
			blobs = append(blobs, *blob)
		}
	}

	if len(blobs) == 0 {
		return nil, fmt.Errorf("failed to download any blobs from container '%s': %w", container, errors.Join(errs...))
	}

	slog.Info("downloaded blobs", "container", container, "requested", numberOfBlobs, "downloaded", len(blobs))
	return blobs, nil
}

// BlobToModel downloads the blob named modelId and deserializes it into a model.
func (c *Client) BlobToModel(ctx context.Context, modelId, container string) Result[core.Model] {
	data, err := c.provider.GetObject(ctx, container, modelId)
	if err != nil {
		return Failure[core.Model](fmt.Errorf("error downloading model '%s' from container '%s': %w", modelId, container, err))
	}

	model, err := core.DecodeModel(data, c.loaders)
	if err != nil {
		return Failure[core.Model](fmt.Errorf("error deserializing model '%s': %w", modelId, err))
	}

	slog.Info("loaded model from blob", "container", container, "model_id", modelId, "model_type", model.Type())
	return Success(model)
}

// ModelToBlob serializes model and stores it in container under modelId.
func (c *Client) ModelToBlob(ctx context.Context, model core.Model, modelId, container string) error {
	data, err := core.EncodeModel(model)
	if err != nil {
		return err
	}

	if err := c.provider.PutObject(ctx, container, modelId, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error uploading model '%s' to container '%s': %w", modelId, container, err)
	}
	return nil
}
