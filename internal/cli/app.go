package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/wambua/sonicslicer/internal/audio"
	"github.com/wambua/sonicslicer/internal/bulk"
	"github.com/wambua/sonicslicer/internal/config"
	"github.com/wambua/sonicslicer/internal/slicer"
	"github.com/wambua/sonicslicer/internal/storage"
)

// Exit codes. Operation failures inside a run are reported but do not
// change the exit code; only unusable arguments do.
const (
	exitOK    = 0
	exitUsage = 2
)

// App turns parsed arguments into processor runs.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *audio.Registry
	loader   audio.Loader
	exporter audio.Exporter
	store    storage.Store

	validate *validator.Validate
	stdout   io.Writer
	stderr   io.Writer
}

// AppOption configures an App.
type AppOption func(*App)

// WithStdout redirects result output.
func WithStdout(w io.Writer) AppOption {
	return func(a *App) { a.stdout = w }
}

// WithStderr redirects error output.
func WithStderr(w io.Writer) AppOption {
	return func(a *App) { a.stderr = w }
}

// New creates an App around the shared collaborators.
func New(cfg *config.Config, logger *slog.Logger, registry *audio.Registry, loader audio.Loader, exporter audio.Exporter, store storage.Store, opts ...AppOption) *App {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		loader:   loader,
		exporter: exporter,
		store:    store,
		validate: validator.New(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run executes one invocation and returns the process exit code.
func (a *App) Run(ctx context.Context, argv []string) int {
	args, err := parseArgs(argv, a.cfg, a.stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	if err := a.validate.Struct(args); err != nil {
		fmt.Fprintf(a.stderr, "slicer: invalid arguments: %v\n", err)
		return exitUsage
	}
	if err := args.checkModes(); err != nil {
		fmt.Fprintf(a.stderr, "slicer: %v\n", err)
		return exitUsage
	}

	run, err := a.buildRun(args)
	if err != nil {
		fmt.Fprintf(a.stderr, "slicer: %v\n", err)
		return exitUsage
	}

	inputs, err := bulk.Expand(args.File, a.registry)
	if err != nil {
		fmt.Fprintf(a.stderr, "slicer: %v\n", err)
		return exitOK
	}

	a.logger.Info("starting run",
		slog.String("file", args.File),
		slog.Int("inputs", len(inputs)),
		slog.String("format", args.Format),
		slog.Int("workers", args.Workers),
	)

	results := bulk.Run(ctx, inputs, args.Workers, run.task)
	a.report(results, run.trim)
	return exitOK
}

// preparedRun is an invocation with every argument already parsed, so
// per-file tasks only do decode, plan, and encode work.
type preparedRun struct {
	task bulk.Task
	trim bool
}

// buildRun validates the budget arguments once and builds the per-file
// task. Argument-level failures surface here, before any file is read.
func (a *App) buildRun(args *Args) (*preparedRun, error) {
	proc, err := slicer.NewProcessor(args.Format, args.Bitrate,
		slicer.WithLoader(a.loader),
		slicer.WithExporter(a.exporter),
		slicer.WithStore(a.store),
		slicer.WithLogger(a.logger),
		slicer.WithOutputDir(args.Output),
	)
	if err != nil {
		return nil, err
	}

	opts := slicer.SplitOptions{Sections: args.Count, Strict: args.Strict}

	switch {
	case args.Split && args.Duration != "":
		v, unit, err := slicer.ParseDuration(args.Duration)
		if err != nil {
			return nil, err
		}
		chunkMS := unit.Milliseconds(v)
		return &preparedRun{task: func(ctx context.Context, input string) ([]string, error) {
			return proc.SplitByDuration(ctx, input, chunkMS, opts)
		}}, nil

	case args.Split:
		v, unit, err := slicer.ParseSize(args.Size)
		if err != nil {
			return nil, err
		}
		maxBytes := unit.Bytes(v)
		return &preparedRun{task: func(ctx context.Context, input string) ([]string, error) {
			return proc.SplitBySize(ctx, input, maxBytes, opts)
		}}, nil

	default:
		startSec, endSec, isRange, err := slicer.ResolveTimeRange(args.TrimStart, args.TrimEnd)
		if err != nil {
			return nil, err
		}
		return &preparedRun{trim: true, task: func(ctx context.Context, input string) ([]string, error) {
			out, err := a.trimOne(ctx, proc, input, startSec, endSec, isRange)
			if err != nil {
				return nil, err
			}
			return []string{out}, nil
		}}, nil
	}
}

// trimOne resolves the trim variant for a single file. With no bounds
// supplied, the whole file is re-encoded by trimming to its duration.
func (a *App) trimOne(ctx context.Context, proc *slicer.Processor, input string, startSec, endSec float64, isRange bool) (string, error) {
	if startSec == 0 && endSec == -1 {
		info, err := proc.Info(ctx, input)
		if err != nil {
			return "", err
		}
		endSec = info.DurationSec
	}

	spec, err := slicer.TrimSpecFrom(startSec, endSec, isRange)
	if err != nil {
		return "", err
	}
	return proc.Trim(ctx, input, spec)
}

// report prints one line per input, plus the produced locations.
// Failures go to stderr and do not affect the exit code.
func (a *App) report(results []bulk.Result, trim bool) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.stderr, "slicer: %s: %v\n", r.Input, r.Err)
			continue
		}

		if trim {
			for _, out := range r.Outputs {
				fmt.Fprintf(a.stdout, "trimmed: %s\n", out)
			}
			continue
		}

		fmt.Fprintf(a.stdout, "created %d chunks from %s\n", len(r.Outputs), r.Input)
		for _, out := range r.Outputs {
			fmt.Fprintf(a.stdout, "  %s\n", out)
		}
	}
}
