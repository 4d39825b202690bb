// Package bootstrap wires up process-wide infrastructure such as logging.
package bootstrap

import (
	"log/slog"
	"os"
)

// NewLogger creates a slog.Logger with the given level and output format.
// Format "json" emits one JSON object per line; anything else falls back to
// the text handler, which is what an interactive terminal session wants.
// Logs go to stderr so they never interleave with menu output on stdout.
func NewLogger(level, format string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, loggerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, loggerOpts)
	}
	return slog.New(handler)
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
