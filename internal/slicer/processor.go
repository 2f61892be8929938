// Package slicer implements the segment calculator and processing
// pipeline behind audio split and trim operations: unit parsing, window
// planning, trim resolution, and the orchestration that turns plans
// into encoded files.
package slicer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/wambua/sonicslicer/internal/audio"
	"github.com/wambua/sonicslicer/internal/storage"
)

// SplitOptions carries the split knobs shared by both split modes.
type SplitOptions struct {
	// Sections caps how many chunks are kept. Zero or negative keeps all.
	// A value of 1 requests a single split: two parts cut at the chunk
	// boundary.
	Sections int
	// Strict drops a final chunk shorter than the requested duration.
	Strict bool
}

// Info describes a source file's audio attributes.
type Info struct {
	DurationSec   float64
	DurationMin   float64
	Channels      int
	SampleWidth   int
	FrameRate     int
	FileSizeBytes int64
}

// Processor orchestrates decode, plan, slice, encode, and publish for a
// fixed target format and bitrate.
type Processor struct {
	loader    audio.Loader
	exporter  audio.Exporter
	store     storage.Store
	logger    *slog.Logger
	outputDir string

	format  audio.Format
	bitrate string
}

// Option configures a Processor.
type Option func(*Processor)

// WithLoader sets the clip loader.
func WithLoader(l audio.Loader) Option {
	return func(p *Processor) { p.loader = l }
}

// WithExporter sets the clip exporter.
func WithExporter(e audio.Exporter) Option {
	return func(p *Processor) { p.exporter = e }
}

// WithStore sets the output store.
func WithStore(s storage.Store) Option {
	return func(p *Processor) { p.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithOutputDir routes all products into dir instead of the source
// file's directory.
func WithOutputDir(dir string) Option {
	return func(p *Processor) { p.outputDir = dir }
}

// NewProcessor creates a Processor for the given target format and
// bitrate. The format must be a supported target and the bitrate is
// normalized up front, so a misconfigured run fails before any file is
// touched.
func NewProcessor(format, bitrate string, opts ...Option) (*Processor, error) {
	f, err := audio.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	b, err := NormalizeBitrate(bitrate)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		format:  f,
		bitrate: b,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.loader == nil {
		p.loader = audio.NewFileLoader(nil)
	}
	if p.exporter == nil {
		p.exporter = audio.NewFFmpegExporter("", "")
	}
	if p.store == nil {
		st, err := storage.NewLocalStore("")
		if err != nil {
			return nil, fmt.Errorf("init local store: %w", err)
		}
		p.store = st
	}
	return p, nil
}

// Format returns the target format.
func (p *Processor) Format() audio.Format { return p.format }

// Bitrate returns the normalized target bitrate.
func (p *Processor) Bitrate() string { return p.bitrate }

// SplitByDuration cuts the file into chunkMS-long pieces and returns the
// published chunk locations in order.
func (p *Processor) SplitByDuration(ctx context.Context, path string, chunkMS int64, opts SplitOptions) ([]string, error) {
	if err := p.validateFile(path); err != nil {
		return nil, err
	}
	clip, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return p.splitClip(ctx, clip, path, chunkMS, opts)
}

// SplitBySize projects maxBytes onto a chunk duration using the source
// clip's attributes and the target encoding, then splits by duration.
func (p *Processor) SplitBySize(ctx context.Context, path string, maxBytes int64, opts SplitOptions) ([]string, error) {
	if err := p.validateFile(path); err != nil {
		return nil, err
	}
	clip, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	chunkMS, err := ChunkDurationForSize(maxBytes, p.format, p.bitrate, clip.SampleWidth(), clip.Channels(), clip.SampleRate())
	if err != nil {
		return nil, err
	}
	p.logger.Debug("projected size budget onto duration",
		slog.String("file", path),
		slog.Int64("max_bytes", maxBytes),
		slog.Int64("chunk_ms", chunkMS),
	)
	return p.splitClip(ctx, clip, path, chunkMS, opts)
}

func (p *Processor) splitClip(ctx context.Context, clip *audio.Clip, path string, chunkMS int64, opts SplitOptions) ([]string, error) {
	totalMS := clip.DurationMS()

	var (
		windows []Window
		err     error
	)
	if opts.Sections == 1 {
		windows, err = PlanCut(totalMS, chunkMS)
	} else {
		windows, err = PlanWindows(totalMS, chunkMS, opts.Sections, opts.Strict)
	}
	if errors.Is(err, ErrNoChunks) {
		p.logger.Warn("no chunks produced",
			slog.String("file", path),
			slog.Int64("chunk_ms", chunkMS),
			slog.Int64("duration_ms", totalMS),
		)
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	outputs := make([]string, 0, len(windows))
	for i, w := range windows {
		dest := PartPath(path, i+1, p.format, p.outputDir)

		if err := p.exporter.Export(ctx, clip.Slice(w.StartMS, w.EndMS), dest, p.format, p.bitrate); err != nil {
			return nil, fmt.Errorf("export chunk %d: %w", i+1, err)
		}
		loc, err := p.store.Publish(ctx, dest)
		if err != nil {
			return nil, fmt.Errorf("publish chunk %d: %w", i+1, err)
		}
		outputs = append(outputs, loc)
	}

	p.logger.Info("split complete",
		slog.String("file", path),
		slog.Int("chunks", len(outputs)),
		slog.String("format", string(p.format)),
	)
	return outputs, nil
}

// Trim applies a trim spec and returns the published location of the
// single product.
func (p *Processor) Trim(ctx context.Context, path string, spec TrimSpec) (string, error) {
	if err := p.validateFile(path); err != nil {
		return "", err
	}
	clip, err := p.loader.Load(path)
	if err != nil {
		return "", err
	}

	w, err := ResolveTrim(spec, clip.DurationMS())
	if err != nil {
		return "", err
	}

	dest := TrimmedPath(path, p.format, p.outputDir)
	if err := p.exporter.Export(ctx, clip.Slice(w.StartMS, w.EndMS), dest, p.format, p.bitrate); err != nil {
		return "", fmt.Errorf("export trim: %w", err)
	}
	loc, err := p.store.Publish(ctx, dest)
	if err != nil {
		return "", fmt.Errorf("publish trim: %w", err)
	}

	p.logger.Info("trim complete",
		slog.String("file", path),
		slog.String("dest", loc),
		slog.Int64("start_ms", w.StartMS),
		slog.Int64("end_ms", w.EndMS),
	)
	return loc, nil
}

// Info decodes the file and reports its audio attributes.
func (p *Processor) Info(_ context.Context, path string) (Info, error) {
	if err := p.validateFile(path); err != nil {
		return Info{}, err
	}
	clip, err := p.loader.Load(path)
	if err != nil {
		return Info{}, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", path, err)
	}

	durationSec := float64(clip.DurationMS()) / 1000
	return Info{
		DurationSec:   durationSec,
		DurationMin:   durationSec / 60,
		Channels:      clip.Channels(),
		SampleWidth:   clip.SampleWidth(),
		FrameRate:     clip.SampleRate(),
		FileSizeBytes: fi.Size(),
	}, nil
}

// validateFile rejects missing paths and non-regular files before any
// decode work starts.
func (p *Processor) validateFile(path string) error {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return nil
}
