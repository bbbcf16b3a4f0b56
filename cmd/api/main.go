package main

import (
	"classifier-backend/cmd"
	"classifier-backend/internal/api"
	"classifier-backend/internal/blobstore"
	"classifier-backend/internal/core"
	"classifier-backend/internal/lifecycle"
	"classifier-backend/internal/registry"
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
)

type APIConfig struct {
	DataContainer     string        `env:"CONTAINER_NAME_DATA,notEmpty,required"`
	ModelsContainer   string        `env:"CONTAINER_NAME_MODELS,notEmpty,required"`
	StorageBackend    string        `env:"STORAGE_BACKEND" envDefault:"s3"`
	LocalStorageDir   string        `env:"LOCAL_STORAGE_DIR"`
	S3EndpointURL     string        `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string        `env:"AWS_REGION" envDefault:"us-east-1"`
	ClassifierType    string        `env:"CLASSIFIER_TYPE" envDefault:"nearest_centroid"`
	APIPort           string        `env:"API_PORT" envDefault:"8001"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	CreateContainers  bool          `env:"CREATE_CONTAINERS" envDefault:"false"`
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	cmd.SetupLogger(cfg.LogLevel)

	provider, err := cmd.NewStorageProvider(cmd.StorageConfig{
		Backend:           cfg.StorageBackend,
		LocalDir:          cfg.LocalStorageDir,
		S3EndpointURL:     cfg.S3EndpointURL,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3Region:          cfg.S3Region,
	})
	if err != nil {
		log.Fatalf("Failed to create storage provider: %v", err)
	}

	if cfg.CreateContainers {
		cmd.EnsureContainers(context.Background(), provider, cfg.DataContainer, cfg.ModelsContainer)
	}

	newClassifier, err := core.ClassifierFactoryFor(core.ModelType(cfg.ClassifierType))
	if err != nil {
		log.Fatalf("Invalid CLASSIFIER_TYPE: %v", err)
	}

	manager, err := lifecycle.NewManager(
		registry.New(),
		blobstore.NewClient(provider, core.NewModelLoaders()),
		core.NewPreprocessor(),
		newClassifier,
		lifecycle.Config{DataContainer: cfg.DataContainer, ModelsContainer: cfg.ModelsContainer},
	)
	if err != nil {
		log.Fatalf("Failed to create model lifecycle manager: %v", err)
	}

	r := api.NewRouter(api.NewModelService(manager), cfg.RequestTimeout)

	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	slog.Info("API server listening", "port", cfg.APIPort, "storage", cfg.StorageBackend,
		"data_container", cfg.DataContainer, "models_container", cfg.ModelsContainer, "classifier", cfg.ClassifierType)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
