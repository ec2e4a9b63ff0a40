package logging

import (
	"context"
	"log/slog"
)

// MultiHandler duplicates records across its child handlers, so the same
// record can go to stdout and the database sink at different level floors.
type MultiHandler struct {
	children []slog.Handler
}

func NewMultiHandler(children ...slog.Handler) *MultiHandler {
	return &MultiHandler{children: children}
}

// Enabled reports true when any child would accept the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, child := range m.children {
		if child.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every child that accepts its level. The
// first child error stops delivery and is returned.
func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, child := range m.children {
		if !child.Enabled(ctx, record.Level) {
			continue
		}
		if err := child.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	children := make([]slog.Handler, len(m.children))
	for i, child := range m.children {
		children[i] = child.WithAttrs(attrs)
	}
	return &MultiHandler{children: children}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	children := make([]slog.Handler, len(m.children))
	for i, child := range m.children {
		children[i] = child.WithGroup(name)
	}
	return &MultiHandler{children: children}
}
