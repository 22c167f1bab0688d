// Package logger sets up structured logging for fixstatic.
// It uses Go's log/slog package with a text handler on stderr.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration options.
type Config struct {
	// Verbose enables debug-level logging. Otherwise only warnings and
	// errors are written, so a successful run stays silent.
	Verbose bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// Component is an optional component name to add to all log entries.
	Component string
}

// Init initializes the global slog logger with the given configuration.
func Init(cfg Config) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	var writer io.Writer = os.Stderr
	if cfg.Output != nil {
		writer = cfg.Output
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})

	logger := slog.New(handler)
	if cfg.Component != "" {
		logger = logger.With("component", cfg.Component)
	}
	slog.SetDefault(logger)
}

// WithComponent returns a new logger with a component attribute.
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
