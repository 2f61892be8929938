// Package bootstrap provides dependency initialization for the slicer.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/wambua/sonicslicer/internal/audio"
	"github.com/wambua/sonicslicer/internal/config"
	"github.com/wambua/sonicslicer/internal/storage"
)

// Dependencies holds the shared collaborators every run is built from.
type Dependencies struct {
	Registry *audio.Registry
	Loader   audio.Loader
	Exporter audio.Exporter
	Store    storage.Store
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := audio.DefaultRegistry()

	return &Dependencies{
		Registry: registry,
		Loader:   audio.NewFileLoader(registry),
		Exporter: audio.NewFFmpegExporter(cfg.FFmpegPath, store.ScratchDir()),
		Store:    store,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			KeyPrefix:       cfg.S3KeyPrefix,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Store(cfg.ScratchDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 store: %w", err)
		}
		logger.Info("S3 publishing configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStore(cfg.ScratchDir)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}
	logger.Info("local store configured",
		slog.String("scratch_dir", localStore.ScratchDir()),
	)
	return localStore, nil
}
