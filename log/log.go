// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Legacy verbosity levels accepted on the command line (0-9 scale, values above 5 are trace).
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Levels of the logger, from most to least verbose.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

var levelNames = []struct {
	level slog.Level
	name  string
}{
	{LevelTrace, "trace"},
	{LevelDebug, "debug"},
	{LevelInfo, "info"},
	{LevelWarn, "warn"},
	{LevelError, "error"},
	{LevelCrit, "crit"},
}

// FromLegacyLevel converts a 0-9 verbosity into a level.
func FromLegacyLevel(verbosity int) slog.Level {
	return ethlog.FromLegacyLevel(verbosity)
}

// LevelName returns the lower case name of l, or its slog form for
// levels without a name.
func LevelName(l slog.Level) string {
	for _, n := range levelNames {
		if n.level == l {
			return n.name
		}
	}
	return l.String()
}

// ParseLevel converts a name returned by LevelName back into a level.
func ParseLevel(name string) (slog.Level, bool) {
	for _, n := range levelNames {
		if n.name == name {
			return n.level, true
		}
	}
	return 0, false
}

// Logger is the logging interface used across the module.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

// WithContext returns a logger carrying the given key/value context.
// The root handler is resolved on every call, so package level loggers
// follow handlers installed later by SetDefault.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return ethlog.Root()
}

// NewLogger returns a logger writing to h.
func NewLogger(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// SetDefault installs the handler as root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// NewHandler creates the root handler writing to w.
// JSON records are emitted when json is set, colored terminal output otherwise (if useColor).
func NewHandler(w io.Writer, verbosity int, json, useColor bool) slog.Handler {
	level := ethlog.FromLegacyLevel(verbosity)
	if json {
		return ethlog.JSONHandlerWithLevel(w, level)
	}
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor)
}

// NewLevelHandler is like NewHandler, with the minimum level read from lvl
// on every record so it can be changed while running.
func NewLevelHandler(w io.Writer, lvl *slog.LevelVar, json, useColor bool) slog.Handler {
	var h slog.Handler
	if json {
		h = ethlog.JSONHandlerWithLevel(w, LevelTrace)
	} else {
		h = ethlog.NewTerminalHandlerWithLevel(w, LevelTrace, useColor)
	}
	return &levelHandler{inner: h, lvl: lvl}
}

type levelHandler struct {
	inner slog.Handler
	lvl   *slog.LevelVar
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.lvl.Level() && h.inner.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{inner: h.inner.WithAttrs(attrs), lvl: h.lvl}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{inner: h.inner.WithGroup(name), lvl: h.lvl}
}

// Discard returns a handler dropping all records.
func Discard() slog.Handler {
	return ethlog.DiscardHandler()
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) root() ethlog.Logger { return ethlog.Root().With(l.ctx...) }

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.root().Crit(msg, ctx...) }
