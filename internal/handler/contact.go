package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/filipexyz/folio/internal/audit"
	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/validate"
	"github.com/google/uuid"
)

const maxContactSize = 64 * 1024 // 64KB

// ContactStore is the storage used by ContactHandler.
type ContactStore interface {
	CreateContactMessage(ctx context.Context, arg db.CreateContactMessageParams) (domain.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)
}

// ContactHandler handles the contact form and its inbox.
type ContactHandler struct {
	store     ContactStore
	publisher EventPublisher
	auditor   Auditor
	now       func() time.Time
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(store ContactStore, publisher EventPublisher, auditor Auditor) *ContactHandler {
	return &ContactHandler{
		store:     store,
		publisher: publisher,
		auditor:   auditor,
		now:       time.Now,
	}
}

// ContactMessageList is the response for GET /api/contact.
type ContactMessageList struct {
	Messages []domain.ContactMessage `json:"messages"`
}

// Submit stores a contact form message and announces it.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactSize)

	var req domain.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if strings.Contains(err.Error(), "http: request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large, max 64KB")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := validate.Validate(validate.Contact, req); err != nil {
		writeValidationError(w, err)
		return
	}

	msg, err := h.store.CreateContactMessage(r.Context(), db.CreateContactMessageParams{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: h.now().UTC(),
	})
	if err != nil {
		slog.Error("failed to store contact message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit contact message")
		return
	}

	publishEvent(r.Context(), h.publisher, domain.TopicContactSubmitted, msg)

	recordAudit(r.Context(), h.auditor, audit.ActorVisitor, audit.ActionContactSubmit, msg.ID, nil)

	slog.Info("contact message received", "id", msg.ID)

	writeJSON(w, http.StatusOK, domain.ContactResponse{
		Message: "Contact message submitted successfully",
		ID:      msg.ID,
	})
}

// List returns every contact message, newest first.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListContactMessages(r.Context())
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list contact messages")
		return
	}
	if messages == nil {
		messages = []domain.ContactMessage{}
	}

	recordAudit(r.Context(), h.auditor, audit.ActorAdmin, audit.ActionContactList, "", map[string]any{"count": len(messages)})

	writeJSON(w, http.StatusOK, ContactMessageList{Messages: messages})
}
