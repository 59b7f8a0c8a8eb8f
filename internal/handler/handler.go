// Package handler implements the folio HTTP API.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/filipexyz/folio/internal/domain"
)

// EventPublisher publishes domain events. Handlers accept a nil publisher
// and skip publishing.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// publishEvent emits topic with payload v. Failures are logged and never
// fail the request; the row is already stored.
func publishEvent(ctx context.Context, p EventPublisher, topic string, v any) {
	if p == nil {
		return
	}
	event, err := domain.NewJSONEvent(topic, v)
	if err != nil {
		slog.Error("failed to build event", "topic", topic, "error", err)
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.Error("failed to publish event", "topic", topic, "event_id", event.ID, "error", err)
	}
}

// Auditor records administrative actions. Handlers accept a nil auditor.
type Auditor interface {
	Log(ctx context.Context, actor, action, target string, detail map[string]any)
}

func recordAudit(ctx context.Context, a Auditor, actor, action, target string, detail map[string]any) {
	if a == nil {
		return
	}
	a.Log(ctx, actor, action, target, detail)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
