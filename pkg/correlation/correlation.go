// Package correlation provides utilities for correlation ID propagation.
// The poll driver stamps one ID per mail message so every log line and
// outbound event produced while handling that message can be tied together.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// KafkaHeaderName is the Kafka header carrying the correlation ID.
const KafkaHeaderName = "X-Correlation-ID"

type contextKey struct{}

// FromContext extracts the correlation ID from context.
// Returns empty string if not present.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithID returns a new context carrying the correlation ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// NewID generates a new correlation ID (UUID v4).
func NewID() string {
	return uuid.New().String()
}
