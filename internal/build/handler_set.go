// Package build wires the logging stack an actorcore host process runs
// with: a fan-out handler that duplicates records to the console and a
// rotating log file, and the rotating writer feeding that file.
package build

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
)

// FanoutHandler duplicates every log record to a set of underlying btclog
// handlers, so one logger call lands on the operator's console and in the
// rotating log file at the same time.
type FanoutHandler struct {
	level btclog.Level
	subs  []btclogv2.Handler
}

// NewFanoutHandler builds a FanoutHandler over the given handlers, all
// leveled to Info until SetLevel is called.
func NewFanoutHandler(subs ...btclogv2.Handler) *FanoutHandler {
	h := &FanoutHandler{subs: subs}
	h.SetLevel(btclog.LevelInfo)

	return h
}

// NewConsoleFileHandler builds the fan-out an actorcore process wires at
// startup: a console handler over console, plus a second handler over file
// when file logging is configured. A nil file yields a console-only fan-out.
func NewConsoleFileHandler(console, file io.Writer) *FanoutHandler {
	subs := []btclogv2.Handler{btclogv2.NewDefaultHandler(console)}
	if file != nil {
		subs = append(subs, btclogv2.NewDefaultHandler(file))
	}

	return NewFanoutHandler(subs...)
}

// Enabled reports whether any underlying handler wants records at the given
// level, so a file handler leveled lower than the console still receives
// its records.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h.subs {
		if sub.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle dispatches the record to every underlying handler. A failing
// handler does not starve the others; all errors are joined and returned.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, sub := range h.subs {
		if !sub.Enabled(ctx, record.Level) {
			continue
		}
		if err := sub.Handle(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WithAttrs derives every underlying handler with the given attributes.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(slogFanout, len(h.subs))
	for i, sub := range h.subs {
		derived[i] = sub.WithAttrs(attrs)
	}

	return derived
}

// WithGroup derives every underlying handler with the given group.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(slogFanout, len(h.subs))
	for i, sub := range h.subs {
		derived[i] = sub.WithGroup(name)
	}

	return derived
}

// SubSystem tags every underlying handler with the given subsystem name,
// keeping the fan-out shape intact.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) SubSystem(tag string) btclogv2.Handler {
	tagged := &FanoutHandler{
		level: h.level,
		subs:  make([]btclogv2.Handler, len(h.subs)),
	}
	for i, sub := range h.subs {
		tagged.subs[i] = sub.SubSystem(tag)
	}

	return tagged
}

// SetLevel applies a single logging level across every underlying handler.
// Per-handler levels can still be set on a handler before it is passed to
// NewFanoutHandler.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) SetLevel(level btclog.Level) {
	for _, sub := range h.subs {
		sub.SetLevel(level)
	}
	h.level = level
}

// Level returns the level most recently applied via SetLevel.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) Level() btclog.Level {
	return h.level
}

// WithPrefix prefixes every underlying handler's messages, keeping the
// fan-out shape intact.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) WithPrefix(prefix string) btclogv2.Handler {
	prefixed := &FanoutHandler{
		level: h.level,
		subs:  make([]btclogv2.Handler, len(h.subs)),
	}
	for i, sub := range h.subs {
		prefixed.subs[i] = sub.WithPrefix(prefix)
	}

	return prefixed
}

var _ btclogv2.Handler = (*FanoutHandler)(nil)

// slogFanout is the derived form of a FanoutHandler produced by WithAttrs
// and WithGroup: those return plain slog.Handler values, so the btclog
// surface (SubSystem, SetLevel, WithPrefix) is no longer reachable and a
// bare handler slice is all that remains to fan out over.
type slogFanout []slog.Handler

// Enabled reports whether any member handler wants the given level.
//
// NOTE: this is part of the slog.Handler interface.
func (f slogFanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range f {
		if sub.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle dispatches the record to every member handler, joining any errors.
//
// NOTE: this is part of the slog.Handler interface.
func (f slogFanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, sub := range f {
		if !sub.Enabled(ctx, record.Level) {
			continue
		}
		if err := sub.Handle(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WithAttrs derives every member handler with the given attributes.
//
// NOTE: this is part of the slog.Handler interface.
func (f slogFanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(slogFanout, len(f))
	for i, sub := range f {
		derived[i] = sub.WithAttrs(attrs)
	}

	return derived
}

// WithGroup derives every member handler with the given group.
//
// NOTE: this is part of the slog.Handler interface.
func (f slogFanout) WithGroup(name string) slog.Handler {
	derived := make(slogFanout, len(f))
	for i, sub := range f {
		derived[i] = sub.WithGroup(name)
	}

	return derived
}

var _ slog.Handler = (slogFanout)(nil)
