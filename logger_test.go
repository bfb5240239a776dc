package studio

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should report all levels disabled")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Logger().Info("render started", "frames", 1)

	if !strings.Contains(buf.String(), "render started") {
		t.Errorf("expected log output, got %q", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)

	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("nil SetLogger should restore the silent logger")
	}
}
