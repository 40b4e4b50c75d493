package fulfillment

import (
	"context"
	"time"
)

// Event describes a terminal pipeline outcome for downstream consumers
// (notification and analytics services). Published best effort: a sink
// failure never fails the pipeline.
type Event struct {
	ProviderOrderID string    `json:"provider_order_id"`
	Outcome         Outcome   `json:"outcome"`
	Error           string    `json:"error,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type EventSink interface {
	Publish(ctx context.Context, event Event) error
}

// NoopSink drops events. Used when no broker is configured.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, Event) error { return nil }
