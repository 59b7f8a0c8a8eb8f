package db

import (
	"context"
	"errors"
	"time"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/jackc/pgx/v5"
)

const listProjects = `-- name: ListProjects :many
SELECT id, title, description, category, image, featured, created_at
FROM projects
ORDER BY created_at DESC
`

func (q *Queries) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := q.db.Query(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

const listProjectsByCategory = `-- name: ListProjectsByCategory :many
SELECT id, title, description, category, image, featured, created_at
FROM projects
WHERE category = $1
ORDER BY created_at DESC
`

func (q *Queries) ListProjectsByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error) {
	rows, err := q.db.Query(ctx, listProjectsByCategory, string(category))
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

const getProject = `-- name: GetProject :one
SELECT id, title, description, category, image, featured, created_at
FROM projects
WHERE id = $1
`

func (q *Queries) GetProject(ctx context.Context, id string) (domain.Project, error) {
	row := q.db.QueryRow(ctx, getProject, id)
	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

const createProject = `-- name: CreateProject :one
INSERT INTO projects (id, title, description, category, image, featured, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, title, description, category, image, featured, created_at
`

type CreateProjectParams struct {
	ID          string
	Title       string
	Description string
	Category    domain.Category
	Image       string
	Featured    bool
	CreatedAt   time.Time
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (domain.Project, error) {
	row := q.db.QueryRow(ctx, createProject,
		arg.ID,
		arg.Title,
		arg.Description,
		string(arg.Category),
		arg.Image,
		arg.Featured,
		arg.CreatedAt,
	)
	return scanProject(row)
}

const countProjects = `-- name: CountProjects :one
SELECT COUNT(*) FROM projects
`

func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countProjects).Scan(&count)
	return count, err
}

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	var category string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&category,
		&p.Image,
		&p.Featured,
		&p.CreatedAt,
	)
	p.Category = domain.Category(category)
	return p, err
}

func collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	defer rows.Close()
	items := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
