package cmd

import (
	"log/slog"
	"testing"

	"classifier-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}

func TestNewStorageProvider(t *testing.T) {
	provider, err := NewStorageProvider(StorageConfig{Backend: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalProvider{}, provider)

	_, err = NewStorageProvider(StorageConfig{Backend: "local"})
	assert.Error(t, err)

	_, err = NewStorageProvider(StorageConfig{Backend: "azure"})
	assert.Error(t, err)
}
