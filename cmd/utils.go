package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"classifier-backend/internal/storage"

	"github.com/joho/godotenv"
)

func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	err := godotenv.Load(configPath)
	if err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}

func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetupLogger(level string) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLogLevel(level)}))
	slog.SetDefault(logger)
}

type StorageConfig struct {
	Backend           string
	LocalDir          string
	S3EndpointURL     string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
}

func NewStorageProvider(cfg StorageConfig) (storage.Provider, error) {
	switch cfg.Backend {
	case "s3":
		return storage.NewS3Provider(storage.S3ClientConfig{
			Endpoint:        cfg.S3EndpointURL,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	case "local":
		if cfg.LocalDir == "" {
			return nil, fmt.Errorf("LOCAL_STORAGE_DIR is required for the local storage backend")
		}
		return storage.NewLocalProvider(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unsupported storage backend '%s'", cfg.Backend)
	}
}

// EnsureContainers creates the configured containers if the backend allows it.
// Failures are logged and ignored since read-only credentials cannot create buckets.
func EnsureContainers(ctx context.Context, provider storage.Provider, containers ...string) {
	for _, container := range containers {
		if err := provider.CreateBucket(ctx, container); err != nil {
			slog.Warn("unable to create container", "container", container, "error", err)
		}
	}
}
