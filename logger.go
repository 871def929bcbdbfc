package shade

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/shade/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for shade and its sub-packages.
// By default, shade produces no log output. Call SetLogger to enable
// logging. Pass nil to restore the silent default.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically and propagates it to the render package.
//
// Log levels used by shade:
//   - [slog.LevelDebug]: codegen and compile diagnostics (source sizes,
//     cache hits, variable counts)
//   - [slog.LevelInfo]: lifecycle events (backend registered)
//   - [slog.LevelWarn]: non-fatal issues
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	shade.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	render.SetLogger(l)
}

// Logger returns the current logger used by shade. Sub-packages call
// this to share the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
