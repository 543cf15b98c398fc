package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewRespectsLevelEnv(t *testing.T) {
	t.Setenv("REPOFORGE_LOG_LEVEL", "debug")
	t.Setenv("REPOFORGE_LOG_FORMAT", "")

	logger := New()
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Fatal("debug level not enabled despite REPOFORGE_LOG_LEVEL=debug")
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	t.Setenv("REPOFORGE_LOG_LEVEL", "")
	t.Setenv("REPOFORGE_LOG_FORMAT", "")

	logger := New()
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Fatal("debug level enabled without REPOFORGE_LOG_LEVEL")
	}
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Fatal("info level not enabled by default")
	}
}
