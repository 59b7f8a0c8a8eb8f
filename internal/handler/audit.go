package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

// AuditStore is the storage used by AuditHandler.
type AuditStore interface {
	ListAuditLogs(ctx context.Context, arg db.ListAuditLogsParams) ([]domain.AuditEntry, error)
}

// AuditHandler handles audit log queries.
type AuditHandler struct {
	store AuditStore
	now   func() time.Time
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(store AuditStore) *AuditHandler {
	return &AuditHandler{store: store, now: time.Now}
}

// AuditList is the response for GET /api/audit.
type AuditList struct {
	Entries []domain.AuditEntry `json:"entries"`
	Count   int                 `json:"count"`
}

// List returns audit entries, newest first. Query parameters: action,
// since (a duration such as 1h) and limit (1-1000, default 50).
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	params := db.ListAuditLogsParams{Limit: 50}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			params.Limit = int32(n)
		}
	}
	if v := r.URL.Query().Get("action"); v != "" {
		params.Action = pgtype.Text{String: v, Valid: true}
	}
	if v := r.URL.Query().Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "since must be a positive duration such as 1h or 30m")
			return
		}
		params.Since = pgtype.Timestamptz{Time: h.now().Add(-d), Valid: true}
	}

	entries, err := h.store.ListAuditLogs(r.Context(), params)
	if err != nil {
		slog.Error("failed to query audit log", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query audit log")
		return
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, AuditList{Entries: entries, Count: len(entries)})
}
