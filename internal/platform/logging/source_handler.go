package logging

import (
	"context"
	"log/slog"
	"runtime"
)

// ConditionalSourceHandler adds a source attribute only for selected levels.
type ConditionalSourceHandler struct {
	next   slog.Handler
	levels map[slog.Level]bool
}

// NewConditionalSourceHandler wraps next so records at levels carry source.
func NewConditionalSourceHandler(next slog.Handler, levels ...slog.Level) *ConditionalSourceHandler {
	set := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		set[level] = true
	}
	return &ConditionalSourceHandler{next: next, levels: set}
}

// Enabled reports whether the wrapped handler accepts level.
func (h *ConditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle forwards the record, attaching file:line when the level asks for it.
func (h *ConditionalSourceHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.levels[record.Level] && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		if frame.File != "" {
			record = record.Clone()
			record.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}))
		}
	}
	return h.next.Handle(ctx, record)
}

// WithAttrs returns a handler whose wrapped handler carries attrs.
func (h *ConditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConditionalSourceHandler{next: h.next.WithAttrs(attrs), levels: h.levels}
}

// WithGroup returns a handler whose wrapped handler opens group name.
func (h *ConditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &ConditionalSourceHandler{next: h.next.WithGroup(name), levels: h.levels}
}
