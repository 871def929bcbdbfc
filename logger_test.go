package shade

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/shade/render"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should discard even error-level records")
	}
}

func TestSetLoggerPropagates(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)

	if Logger() != l {
		t.Error("Logger() does not return the configured logger")
	}
	if render.Logger() != l {
		t.Error("SetLogger did not propagate to the render package")
	}

	render.Logger().Debug("probe")
	if !strings.Contains(buf.String(), "probe") {
		t.Error("render log output not written through the configured logger")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("nil should restore the silent default")
	}
}
