package log

import (
	"context"
	"log/slog"
)

type contextKey string

const contextAttrsKey contextKey = "attrs"

// WithAttrs returns a copy of the context carrying additional log attributes
// that will be attached to every record logged with this context.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing, _ := ctx.Value(contextAttrsKey).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, contextAttrsKey, merged)
}

// ContextHandler decorates a slog.Handler with the attributes carried by the
// record's context.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(contextAttrsKey).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, record)
}

var _ slog.Handler = ContextHandler{}
