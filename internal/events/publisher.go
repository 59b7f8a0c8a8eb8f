package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher publishes events to JetStream.
type Publisher struct {
	js jetstream.JetStream
}

// NewPublisher creates a new Publisher.
func NewPublisher(js jetstream.JetStream) *Publisher {
	return &Publisher{js: js}
}

// Publish sends an event to JetStream and waits for the stream ack.
func (p *Publisher) Publish(ctx context.Context, event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, Subject(event.Topic), data,
		jetstream.WithMsgID(event.ID),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	slog.Debug("event published",
		"event_id", event.ID,
		"topic", event.Topic,
		"stream", ack.Stream,
		"seq", ack.Sequence,
		"duplicate", ack.Duplicate,
	)

	return nil
}
