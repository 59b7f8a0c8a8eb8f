package db

import (
	"context"
	"time"

	"github.com/filipexyz/folio/internal/domain"
)

const createContactMessage = `-- name: CreateContactMessage :one
INSERT INTO contact_messages (id, name, email, message, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, message, created_at
`

type CreateContactMessageParams struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := q.db.QueryRow(ctx, createContactMessage,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Message,
		arg.CreatedAt,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
	return m, err
}

const listContactMessages = `-- name: ListContactMessages :many
SELECT id, name, email, message, created_at
FROM contact_messages
ORDER BY created_at DESC
`

func (q *Queries) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := q.db.Query(ctx, listContactMessages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
