package projects

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new project.
func (r *PGRepo) Create(ctx context.Context, p Project) error {
	const query = `
INSERT INTO projects (id, name, contact_name, contact_email, contact_phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.ContactName, p.ContactEmail, p.ContactPhone, p.CreatedAt)
	return err
}

// GetByID returns a project by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Project, error) {
	const query = `
SELECT id, name, contact_name, contact_email, contact_phone, created_at
FROM projects
WHERE id = $1`
	var p Project
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.ContactName,
		&p.ContactEmail,
		&p.ContactPhone,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, err
	}
	return p, nil
}
