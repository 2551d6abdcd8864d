// Package attr provides slog attribute helpers used across services so log
// fields stay consistently named.
package attr

import (
	"context"
	"log/slog"
)

type correlationIDKey struct{}

// String returns a string slog attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int returns an int slog attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Any returns a slog attribute for an arbitrary value.
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error returns the conventional "error" attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// WithCorrelationID stores a correlation ID on the context for later
// extraction in log lines.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID returns the "correlation_id" attribute from the
// context, or an empty value when none was set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}
