package lifecycle

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrBlobFetch       = errors.New("failed to fetch training blobs")
	ErrTraining        = errors.New("failed to train model")
	ErrModelActivation = errors.New("failed to activate model")
	ErrNotTrained      = errors.New("no trained model found")
	ErrNotActivated    = errors.New("no activated model found")
	ErrExport          = errors.New("failed to export model")
)
