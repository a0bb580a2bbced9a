package internal

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		quiet bool
		debug bool
		want  slog.Level
	}{
		{name: "default", want: slog.LevelInfo},
		{name: "quiet", quiet: true, want: slog.LevelWarn},
		{name: "debug", debug: true, want: slog.LevelDebug},
		{name: "debug wins", quiet: true, debug: true, want: slog.LevelDebug},
	}

	t.Cleanup(func() {
		SetQuiet(false)
		SetDebug(false)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetQuiet(tt.quiet)
			SetDebug(tt.debug)
			if got := Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerFollowsLevel(t *testing.T) {
	t.Cleanup(func() { SetQuiet(false) })

	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetQuiet(true)
	logger.Info("hidden")
	logger.Warn("shown", "package", "python-3.11-image")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged in quiet mode: %q", out)
	}
	if !strings.Contains(out, "bcigen.package=python-3.11-image") {
		t.Errorf("missing grouped attribute: %q", out)
	}
}
