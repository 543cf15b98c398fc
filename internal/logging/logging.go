// Package logging builds the process-wide slog logger. Diagnostics go to
// stderr so stdout stays free for the UI and reports.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a logger configured from REPOFORGE_LOG_LEVEL and
// REPOFORGE_LOG_FORMAT (text by default, "json" for machine consumption).
func New() *slog.Logger {
	level := parseLevel(os.Getenv("REPOFORGE_LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("REPOFORGE_LOG_FORMAT")))
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
