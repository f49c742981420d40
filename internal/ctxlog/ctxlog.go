// Package ctxlog threads a *slog.Logger through context.Context, so the
// resolution recursion can carry scoped attributes without widening any
// signatures along the way.
package ctxlog

import (
	"context"
	"log/slog"
)

// ctxKey is unexported so no other package can collide with the entry.
type ctxKey struct{}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With returns a context whose logger carries the given attributes on
// top of everything it already has. Rescoping at each recursion level
// makes nested log lines show their provenance.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// FromContext returns the context's logger. A context without one yields
// slog.Default: a library must stay usable with ambient defaults.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
