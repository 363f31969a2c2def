// Package logging provides structured logging for La Biblioteca Gamer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds logging configuration.
type Config struct {
	Format string // "json" or "text"
	Level  string // "debug", "info", "warn", "error"
	File   string // Optional log file; stderr when empty
}

// DefaultConfig returns sensible logging defaults.
func DefaultConfig() Config {
	return Config{
		Format: "text",
		Level:  "info",
	}
}

var logger *slog.Logger

// Setup initializes the global logger with the given configuration.
// The returned closer releases the log file, if one was opened.
func Setup(cfg Config) (io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil { //nolint:gosec // Standard dir permissions
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) //nolint:gosec // Path from user config
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	SetupWriter(cfg, out)
	return closer, nil
}

// SetupWriter initializes the global logger writing to w.
func SetupWriter(cfg Config, w io.Writer) {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) slog.Level {
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

// Get returns the configured logger, or the default if not set up.
func Get() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
