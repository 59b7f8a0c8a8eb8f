package db

import (
	"context"
	"net/netip"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertAuditLog = `-- name: InsertAuditLog :exec
INSERT INTO audit_log (actor, action, target, detail, ip_address)
VALUES ($1, $2, $3, $4, $5)
`

type InsertAuditLogParams struct {
	Actor     string
	Action    string
	Target    pgtype.Text
	Detail    []byte
	IpAddress *netip.Addr
}

func (q *Queries) InsertAuditLog(ctx context.Context, arg InsertAuditLogParams) error {
	_, err := q.db.Exec(ctx, insertAuditLog,
		arg.Actor,
		arg.Action,
		arg.Target,
		arg.Detail,
		arg.IpAddress,
	)
	return err
}

const listAuditLogs = `-- name: ListAuditLogs :many
SELECT id, created_at, actor, action, COALESCE(target, ''), detail, COALESCE(host(ip_address), '')
FROM audit_log
WHERE ($1::text IS NULL OR action = $1)
  AND ($2::timestamptz IS NULL OR created_at >= $2)
ORDER BY created_at DESC, id DESC
LIMIT $3
`

type ListAuditLogsParams struct {
	Action pgtype.Text
	Since  pgtype.Timestamptz
	Limit  int32
}

func (q *Queries) ListAuditLogs(ctx context.Context, arg ListAuditLogsParams) ([]domain.AuditEntry, error) {
	rows, err := q.db.Query(ctx, listAuditLogs, arg.Action, arg.Since, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		var detail []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Actor, &e.Action, &e.Target, &detail, &e.IPAddress); err != nil {
			return nil, err
		}
		if detail != nil {
			e.Detail = detail
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
