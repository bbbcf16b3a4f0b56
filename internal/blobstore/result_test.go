package blobstore_test

import (
	"classifier-backend/internal/blobstore"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	ok := blobstore.Success(42)
	assert.True(t, ok.Ok())
	assert.Equal(t, 42, ok.Value())
	assert.NoError(t, ok.Err())

	failed := blobstore.Failure[int](errors.New("network timeout"))
	assert.False(t, failed.Ok())
	value, err := failed.Unwrap()
	assert.Equal(t, 0, value)
	assert.EqualError(t, err, "network timeout")
}
