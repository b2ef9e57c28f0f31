// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"pravaah/internal/config"
)

// New returns a logger writing to stdout. Format "json" selects the JSON
// handler; anything else is human-readable text.
func New(cfg *config.LogConfig, service string) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, service)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg *config.LogConfig, service string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

// Setup installs the configured logger as the slog default and returns it.
func Setup(cfg *config.LogConfig, service string) *slog.Logger {
	logger := New(cfg, service)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
