package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"esimprocessor/internal/domain/fulfillment"
	"esimprocessor/internal/messaging"
	"esimprocessor/pkg/correlation"
)

// EventSink publishes fulfillment outcomes to Kafka for downstream
// notification and analytics consumers.
type EventSink struct {
	writer *kafka.Writer
}

var _ fulfillment.EventSink = (*EventSink)(nil)

func NewEventSink(brokers []string, topic string) *EventSink {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &EventSink{writer: writer}
}

// Publish sends the event keyed by provider order id, so all events for one
// order land on the same partition.
func (s *EventSink) Publish(ctx context.Context, event fulfillment.Event) error {
	env, err := messaging.NewEnvelope(event.ProviderOrderID, eventType(event.Outcome), event)
	if err != nil {
		return err
	}

	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
	}

	if corrID := correlation.FromContext(ctx); corrID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   correlation.KafkaHeaderName,
			Value: []byte(corrID),
		})
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	slog.DebugContext(ctx, "Fulfillment event published",
		"topic", s.writer.Topic,
		"key", env.Key,
		"type", env.Type,
		"event_id", env.EventID)
	return nil
}

// Close closes the Kafka writer.
func (s *EventSink) Close() error {
	return s.writer.Close()
}

func eventType(outcome fulfillment.Outcome) string {
	switch outcome {
	case fulfillment.OutcomeFulfilled:
		return "fulfillment.completed"
	case fulfillment.OutcomeFailed:
		return "fulfillment.failed"
	default:
		return "fulfillment.skipped"
	}
}
