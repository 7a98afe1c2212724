package logging

import (
	"context"
	"log/slog"
	"strings"
)

type correlationKey struct{}

// WithCorrelationID returns a context carrying id for later log lines.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, correlationKey{}, strings.TrimSpace(id))
}

// CorrelationIDFromContext returns the correlation ID stored in ctx.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(correlationKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ContextFields extracts standardized slog attributes from ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if id, ok := CorrelationIDFromContext(ctx); ok {
		return []slog.Attr{slog.String(FieldCorrelationID, id)}
	}
	return nil
}

// WithContext returns a logger augmented with fields derived from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
