package studio

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// The pipeline is usually embedded in a host application that owns
// logging policy, so studio stays quiet until the host hands it a
// logger. Subpackages (assets, render, scene/ggcanvas) all log through
// [Logger], which keeps them off each other's import paths.

// nopHandler drops every record. Enabled reports false, so call sites
// never pay for formatting while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger behind an atomic pointer; renders
// run concurrently with host reconfiguration.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs l as the logger for studio and every subpackage.
// Passing nil restores the default silent behavior. Safe to call while
// renders are in flight.
//
// Debug carries per-asset preload results and per-node render steps.
// Info carries the render lifecycle (start, superseded, done). Warn
// carries recoverable problems such as placeholder substitution and
// per-layer render failures.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the active logger, never nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
