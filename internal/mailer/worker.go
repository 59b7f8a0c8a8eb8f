package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/events"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	consumerName = "contact-mailer"
	retryDelay   = time.Minute
	maxDeliver   = 5
)

var errMalformed = errors.New("malformed contact event")

// Worker consumes contact.submitted events and emails the owner.
type Worker struct {
	stream jetstream.Stream
	sender Sender
	from   string
	to     string
	logger *slog.Logger
}

// NewWorker creates a mailer worker. from is the envelope sender and to the
// owner's address.
func NewWorker(stream jetstream.Stream, sender Sender, from, to string) *Worker {
	return &Worker{
		stream: stream,
		sender: sender,
		from:   from,
		to:     to,
		logger: slog.Default().With("component", "mailer"),
	}
}

// Start consumes events until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	consumer, err := w.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       consumerName,
		FilterSubject: events.Subject(domain.TopicContactSubmitted),
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       time.Minute,
		MaxDeliver:    maxDeliver,
	})
	if err != nil {
		return fmt.Errorf("create mailer consumer: %w", err)
	}

	consCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		w.processMessage(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("start mailer consumer: %w", err)
	}

	w.logger.Info("mailer worker started", "to", w.to)

	<-ctx.Done()
	consCtx.Stop()

	return nil
}

func (w *Worker) processMessage(ctx context.Context, msg jetstream.Msg) {
	err := w.handle(ctx, msg.Data())
	switch {
	case err == nil:
		msg.Ack()
	case errors.Is(err, errMalformed):
		w.logger.Error("dropping contact event", "error", err)
		msg.Ack()
	default:
		w.logger.Warn("contact notification failed, will retry", "error", err)
		msg.NakWithDelay(retryDelay)
	}
}

func (w *Worker) handle(ctx context.Context, data []byte) error {
	var event domain.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	var contact domain.ContactMessage
	if err := json.Unmarshal(event.Data, &contact); err != nil {
		return fmt.Errorf("%w: event %s: %v", errMalformed, event.ID, err)
	}
	if contact.Email == "" {
		return fmt.Errorf("%w: event %s has no email", errMalformed, event.ID)
	}

	if err := w.sender.Send(ctx, ContactNotification(w.from, w.to, contact)); err != nil {
		return err
	}

	w.logger.Info("contact notification sent", "event_id", event.ID, "contact_id", contact.ID)
	return nil
}
