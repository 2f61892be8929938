package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrNilClip is returned when an export is attempted with no clip.
var ErrNilClip = errors.New("audio: nil clip")

// FFmpegExporter implements Exporter. WAV and AIFF targets are written
// natively; compressed targets go through a scratch WAV handed to the
// ffmpeg CLI.
type FFmpegExporter struct {
	ffmpegPath string
	scratchDir string
}

// NewFFmpegExporter creates a new FFmpegExporter.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found in PATH).
// If scratchDir is empty, the system temp directory is used.
func NewFFmpegExporter(ffmpegPath, scratchDir string) *FFmpegExporter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	return &FFmpegExporter{ffmpegPath: ffmpegPath, scratchDir: scratchDir}
}

// Export encodes the clip into dest.
func (e *FFmpegExporter) Export(ctx context.Context, clip *Clip, dest string, format Format, bitrate string) error {
	if clip == nil {
		return ErrNilClip
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	switch format {
	case FormatWAV, FormatAIFF:
		return e.exportNative(clip, dest, format)
	case FormatMP3, FormatOGG, FormatFLAC:
		return e.exportCompressed(ctx, clip, dest, format, bitrate)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (e *FFmpegExporter) exportNative(clip *Clip, dest string, format Format) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	if format == FormatAIFF {
		err = EncodeAIFF(clip, f)
	} else {
		err = EncodeWAV(clip, f)
	}
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}

func (e *FFmpegExporter) exportCompressed(ctx context.Context, clip *Clip, dest string, format Format, bitrate string) error {
	scratch, err := e.writeScratchWAV(clip)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(scratch) }()

	return e.runFFmpeg(ctx, encodeArgs(scratch, dest, format, bitrate))
}

// encodeArgs builds the ffmpeg argument list for a compressed target.
// FLAC is lossless, so no bitrate flag is passed for it.
func encodeArgs(src, dest string, format Format, bitrate string) []string {
	args := []string{
		"-y",
		"-i", src,
		"-codec:a", codecFor(format),
	}
	if format != FormatFLAC && bitrate != "" {
		args = append(args, "-b:a", bitrate)
	}
	return append(args, dest)
}

func codecFor(format Format) string {
	switch format {
	case FormatMP3:
		return "libmp3lame"
	case FormatOGG:
		return "libvorbis"
	case FormatFLAC:
		return "flac"
	default:
		return string(format)
	}
}

// writeScratchWAV dumps the clip to a temp WAV for ffmpeg to consume.
func (e *FFmpegExporter) writeScratchWAV(clip *Clip) (string, error) {
	f, err := os.CreateTemp(e.scratchDir, "slicer-*.wav")
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}

	if err := EncodeWAV(clip, f); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write scratch wav: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close scratch wav: %w", err)
	}
	return f.Name(), nil
}

// runFFmpeg executes ffmpeg with the given arguments and returns an error
// containing stderr output if the command fails.
func (e *FFmpegExporter) runFFmpeg(ctx context.Context, args []string) error {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &FFmpegError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return nil
}

// FFmpegError represents an error from running ffmpeg, including the stderr output.
type FFmpegError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}

// Verify interface implementation at compile time.
var _ Exporter = (*FFmpegExporter)(nil)
