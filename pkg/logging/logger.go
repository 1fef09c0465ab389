// Package logging provides the shared slog logger for the document
// graph engine, with a compact console handler for interactive use and
// an optional JSON handler for embedding hosts that collect logs.
package logging

import (
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	// Compact handler for readable console output; embedding hosts
	// can switch to JSON with SetJSONOutput.
	handler := NewCompactHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger = slog.New(handler)
}

// SetLevel changes the logging level of the compact console handler.
func SetLevel(level slog.Level) {
	logger = slog.New(NewCompactHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetJSONOutput switches to JSON format output.
func SetJSONOutput(level slog.Level) {
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Debug logs internal engine behavior (merge folds, precedence
// construction, traversal statistics).
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs user-facing operations.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs conditions that should be monitored, e.g. structural
// findings from validation.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs logical bugs that shouldn't happen.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
