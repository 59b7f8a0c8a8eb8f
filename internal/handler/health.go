package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnChecker reports broker connectivity.
type ConnChecker interface {
	IsConnected() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db     Pinger
	events ConnChecker
}

// NewHealthHandler creates a new HealthHandler. events may be nil when
// the server runs without NATS.
func NewHealthHandler(db Pinger, events ConnChecker) *HealthHandler {
	return &HealthHandler{db: db, events: events}
}

// Health is a simple liveness probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Portfolio API is running",
	})
}

// Ready is a readiness probe that checks dependencies.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":   "ready",
		"database": "connected",
		"events":   "disabled",
	}
	status := http.StatusOK

	if h.events != nil {
		response["events"] = "connected"
		if !h.events.IsConnected() {
			response["status"] = "not_ready"
			response["events"] = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		response["status"] = "not_ready"
		response["database"] = "disconnected"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}
