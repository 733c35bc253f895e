package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const deliveryIDKey contextKey = iota

// NewDeliveryID returns a short id that ties together the log lines of one
// notification fan-out.
func NewDeliveryID() string {
	return uuid.NewString()[:8]
}

// WithDeliveryID attaches id to ctx.
func WithDeliveryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deliveryIDKey, id)
}

// EnsureDeliveryID returns ctx unchanged when it already carries a
// delivery id, and a child with a fresh one otherwise.
func EnsureDeliveryID(ctx context.Context) context.Context {
	if DeliveryIDFromContext(ctx) != "" {
		return ctx
	}
	return WithDeliveryID(ctx, NewDeliveryID())
}

// DeliveryIDFromContext returns the delivery id in ctx, or "".
func DeliveryIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(deliveryIDKey).(string)
	return id
}

// FromContext returns the global logger annotated with the delivery id
// in ctx. Arguments passed to it are not masked; use Delivery for that.
func FromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := DeliveryIDFromContext(ctx); id != "" {
		logger = logger.With(KeyDeliveryID, id)
	}
	return logger
}

// Delivery logs a debug line for ctx's delivery with masked arguments.
func Delivery(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).DebugContext(ctx, msg, MaskArgs(args)...)
}
