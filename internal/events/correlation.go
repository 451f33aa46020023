package events

import (
	"context"

	"github.com/google/uuid"
)

// CorrelationHeader carries the correlation id between services.
const CorrelationHeader = "X-Correlation-ID"

type correlationKey struct{}

// WithCorrelationID stores id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored on ctx, or "" if none.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// NewCorrelationID generates a fresh id.
func NewCorrelationID() string {
	return uuid.NewString()
}
