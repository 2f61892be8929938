package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv drops every variable the loader reads so earlier shell state
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SLICER_FORMAT",
		"SLICER_BITRATE",
		"SLICER_FFMPEG_PATH",
		"SLICER_SCRATCH_DIR",
		"SLICER_MAX_WORKERS",
		"SLICER_S3_BUCKET",
		"SLICER_S3_REGION",
		"SLICER_S3_ENDPOINT",
		"SLICER_S3_PREFIX",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"SLICER_LOG_FORMAT",
		"SLICER_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mp3", cfg.Format)
	assert.Equal(t, "192k", cfg.Bitrate)
	assert.Equal(t, "", cfg.FFmpegPath)
	assert.Equal(t, "/tmp/slicer", cfg.ScratchDir)
	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLICER_FORMAT", "flac")
	t.Setenv("SLICER_BITRATE", "320k")
	t.Setenv("SLICER_FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("SLICER_SCRATCH_DIR", "/var/tmp/slicer")
	t.Setenv("SLICER_MAX_WORKERS", "8")
	t.Setenv("SLICER_S3_BUCKET", "my-bucket")
	t.Setenv("SLICER_S3_REGION", "eu-west-1")
	t.Setenv("SLICER_S3_ENDPOINT", "http://localhost:4566")
	t.Setenv("SLICER_S3_PREFIX", "chunks")
	t.Setenv("AWS_ACCESS_KEY_ID", "access-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret-key")
	t.Setenv("SLICER_LOG_FORMAT", "json")
	t.Setenv("SLICER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "flac", cfg.Format)
	assert.Equal(t, "320k", cfg.Bitrate)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "/var/tmp/slicer", cfg.ScratchDir)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, "my-bucket", cfg.S3Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "http://localhost:4566", cfg.S3Endpoint)
	assert.Equal(t, "chunks", cfg.S3KeyPrefix)
	assert.Equal(t, "access-key", cfg.AWSAccessKeyID)
	assert.Equal(t, "secret-key", cfg.AWSSecretAccessKey)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.S3Enabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("non-numeric workers", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SLICER_MAX_WORKERS", "lots")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("zero workers", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SLICER_MAX_WORKERS", "0")

		_, err := Load()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidWorkerCount)
	})

	t.Run("bucket without region", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SLICER_S3_BUCKET", "my-bucket")

		_, err := Load()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrS3ConfigIncomplete)
	})

	t.Run("region without bucket", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SLICER_S3_REGION", "eu-west-1")

		_, err := Load()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrS3ConfigIncomplete)
	})
}

func TestConfig_S3Enabled(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		region   string
		expected bool
	}{
		{"both set", "bucket", "region", true},
		{"only bucket", "bucket", "", false},
		{"only region", "", "region", false},
		{"neither set", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				S3Bucket: tt.bucket,
				S3Region: tt.region,
			}
			assert.Equal(t, tt.expected, cfg.S3Enabled())
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := &Config{
		Format:             "mp3",
		Bitrate:            "192k",
		ScratchDir:         "/tmp/slicer",
		MaxWorkers:         4,
		S3Bucket:           "bucket",
		S3Region:           "region",
		AWSAccessKeyID:     "super-secret-id",
		AWSSecretAccessKey: "super-secret-key",
		LogFormat:          "text",
		LogLevel:           "info",
	}

	str := cfg.String()
	assert.Contains(t, str, "mp3")
	assert.Contains(t, str, "bucket")
	assert.NotContains(t, str, "super-secret-id")
	assert.NotContains(t, str, "super-secret-key")
}

func TestConfig_NewLogger(t *testing.T) {
	for _, format := range []string{"text", "json", "JSON", "unknown"} {
		cfg := &Config{LogFormat: format, LogLevel: "info"}
		assert.NotNil(t, cfg.NewLogger(), "format %q", format)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"ERROR", "ERROR"},
		{"nonsense", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input).String())
		})
	}
}
