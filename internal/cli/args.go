// Package cli parses the command line, validates the argument shape,
// and drives split and trim runs over one file or a whole directory.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/wambua/sonicslicer/internal/config"
)

// ErrUsage is returned for argument combinations that cannot be run.
var ErrUsage = errors.New("cli: invalid usage")

// Args mirrors the command line surface. Defaults for format, bitrate,
// and workers come from the environment config; flags override them.
type Args struct {
	File      string `validate:"required"`
	Split     bool
	Size      string
	Duration  string
	Count     int `validate:"eq=-1|gt=0"`
	Strict    bool
	Trim      bool
	TrimStart string
	TrimEnd   string
	Format    string `validate:"required,oneof=wav mp3 ogg flac aiff"`
	Bitrate   string `validate:"required"`
	Output    string
	Workers   int `validate:"gt=0"`
}

// parseArgs binds the flag set and parses argv. Errors (including
// -help) follow the flag package's ContinueOnError behavior.
func parseArgs(argv []string, cfg *config.Config, stderr io.Writer) (*Args, error) {
	a := &Args{}

	fs := flag.NewFlagSet("slicer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&a.File, "file", "", "source audio file or directory (required)")
	fs.BoolVar(&a.Split, "split", false, "split the source into chunks")
	fs.StringVar(&a.Size, "size", "", "maximum chunk size, e.g. 700kb, 10mb")
	fs.StringVar(&a.Duration, "duration", "", "chunk duration, e.g. 5sec, 2min")
	fs.IntVar(&a.Count, "count", -1, "chunks to keep; -1 keeps all, 1 cuts the file in two")
	fs.BoolVar(&a.Strict, "strict", false, "drop a final chunk shorter than requested")
	fs.BoolVar(&a.Trim, "trim", false, "trim the source")
	fs.StringVar(&a.TrimStart, "trim_start", "0", "trim start, e.g. 10sec (0 means unset)")
	fs.StringVar(&a.TrimEnd, "trim_end", "-1", "trim end, e.g. 2min (-1 means unset)")
	fs.StringVar(&a.Format, "format", cfg.Format, "output format: wav, mp3, ogg, flac, aiff")
	fs.StringVar(&a.Bitrate, "bitrate", cfg.Bitrate, "output bitrate, e.g. 192k")
	fs.StringVar(&a.Output, "output", "", "output directory (default: alongside each source)")
	fs.StringVar(&a.Output, "O", "", "shorthand for -output")
	fs.IntVar(&a.Workers, "workers", cfg.MaxWorkers, "concurrent files in directory mode")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	return a, nil
}

// checkModes enforces the combinations the flag grammar cannot express:
// exactly one of split/trim, and split needs exactly one budget flag.
func (a *Args) checkModes() error {
	switch {
	case a.Split == a.Trim:
		return fmt.Errorf("%w: exactly one of -split or -trim is required", ErrUsage)
	case a.Split && (a.Size == "") == (a.Duration == ""):
		return fmt.Errorf("%w: -split needs exactly one of -size or -duration", ErrUsage)
	default:
		return nil
	}
}
