// Package main provides the entry point for the slicer command line tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wambua/sonicslicer/internal/bootstrap"
	"github.com/wambua/sonicslicer/internal/cli"
	"github.com/wambua/sonicslicer/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Initialize dependencies using bootstrap
	deps, err := bootstrap.NewDependencies(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	app := cli.New(cfg, logger, deps.Registry, deps.Loader, deps.Exporter, deps.Store)

	// Cancel in-flight work on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, os.Args[1:])
}
