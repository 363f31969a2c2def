package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ryanm101/biblioteca/internal/app"
	"github.com/ryanm101/biblioteca/internal/config"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/metrics"
	"github.com/ryanm101/biblioteca/internal/tracing"
	"github.com/ryanm101/biblioteca/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs always go to a file.
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "biblioteca-tui.log"
	}
	closer, err := logging.Setup(logging.Config{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
		File:   logFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logging.Error("failed to setup tracing", "error", err)
		shutdown = func(context.Context) error { return nil }
	}
	defer func() { _ = shutdown(context.Background()) }()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logging.Error("metrics listener failed", "error", err)
			}
		}()
	}

	m, unsubscribe := tui.New(a.Client, a.Details, a.Wishlist, tui.OptionsFromConfig(cfg))
	defer unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
