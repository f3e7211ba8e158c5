package message

import (
	"context"
	"database/sql"

	"hagwon/internal/errs"
)

// TemplateStore is the persistence surface for templates.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	CreateTemplate(ctx context.Context, content string) (Template, error)
	DeleteTemplate(ctx context.Context, id int) error
}

// Repository persists message templates in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListTemplates returns all templates, newest first.
func (r *Repository) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, content, created_at FROM message_templates ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// CreateTemplate inserts a template.
func (r *Repository) CreateTemplate(ctx context.Context, content string) (Template, error) {
	var t Template
	t.Content = content
	row := r.db.QueryRowContext(ctx, `INSERT INTO message_templates (content) VALUES ($1) RETURNING id, created_at`, content)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return Template{}, err
	}
	return t, nil
}

// DeleteTemplate removes a template by id.
func (r *Repository) DeleteTemplate(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM message_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
