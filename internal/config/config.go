// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrInvalidWorkerCount is returned when SLICER_MAX_WORKERS is not positive.
	ErrInvalidWorkerCount = errors.New("config: SLICER_MAX_WORKERS must be positive")
	// ErrS3ConfigIncomplete is returned when only part of the S3 settings is present.
	ErrS3ConfigIncomplete = errors.New("config: S3 publishing needs both SLICER_S3_BUCKET and SLICER_S3_REGION")
)

// Config holds the environment-driven defaults for the slicer. Flags
// override these per invocation.
type Config struct {
	// Encoding defaults
	Format  string `env:"SLICER_FORMAT, default=mp3" json:"format"`
	Bitrate string `env:"SLICER_BITRATE, default=192k" json:"bitrate"`

	// Tool settings
	FFmpegPath string `env:"SLICER_FFMPEG_PATH" json:"ffmpeg_path,omitempty"`
	ScratchDir string `env:"SLICER_SCRATCH_DIR, default=/tmp/slicer" json:"scratch_dir"`

	// Bulk processing settings
	MaxWorkers int `env:"SLICER_MAX_WORKERS, default=4" json:"max_workers"`

	// Optional S3 publishing
	S3Bucket           string `env:"SLICER_S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"SLICER_S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"SLICER_S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	S3KeyPrefix        string `env:"SLICER_S3_PREFIX" json:"s3_prefix,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"SLICER_LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"SLICER_LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 publishing is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxWorkers < 1 {
		return ErrInvalidWorkerCount
	}
	if (c.S3Bucket == "") != (c.S3Region == "") {
		return ErrS3ConfigIncomplete
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// Logs go to stderr so that stdout stays clean for command output.
// When LogFormat is "json", it outputs JSON logs suitable for automation.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Format: %s, Bitrate: %s, FFmpegPath: %s, ScratchDir: %s, MaxWorkers: %d, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.Format,
		c.Bitrate,
		c.FFmpegPath,
		c.ScratchDir,
		c.MaxWorkers,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
