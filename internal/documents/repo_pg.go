package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    project_id,
    category,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    status,
    version,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	status := doc.Status
	if status == "" {
		status = StatusNotSubmitted
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.ProjectID,
		string(doc.Category),
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		string(status),
		doc.Version,
		doc.UploadedAt,
	)
	return err
}

// GetByID returns a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, project_id, category, file_name, mime_type, size_bytes, storage_key, status, version, uploaded_at
FROM documents
WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// ListByProject returns all documents for a project, newest upload first.
func (r *PGRepo) ListByProject(ctx context.Context, projectID string) ([]Document, error) {
	const query = `
SELECT id, project_id, category, file_name, mime_type, size_bytes, storage_key, status, version, uploaded_at
FROM documents
WHERE project_id = $1
ORDER BY uploaded_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var category, status string
		if err := rows.Scan(
			&doc.ID,
			&doc.ProjectID,
			&category,
			&doc.FileName,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.StorageKey,
			&status,
			&doc.Version,
			&doc.UploadedAt,
		); err != nil {
			return nil, err
		}
		doc.Category = Category(category)
		doc.Status = Status(status)
		out = append(out, doc)
	}
	return out, rows.Err()
}

// MaxVersion returns the highest version for a (project, category) pair.
func (r *PGRepo) MaxVersion(ctx context.Context, projectID string, category Category) (int, error) {
	const query = `
SELECT COALESCE(MAX(version), 0)
FROM documents
WHERE project_id = $1 AND category = $2`
	var max int
	err := r.DB.QueryRowContext(ctx, query, projectID, string(category)).Scan(&max)
	return max, err
}

// UpdateStatus sets the review status of a document.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE documents SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Document, error) {
	var doc Document
	var category, status string
	err := row.Scan(
		&doc.ID,
		&doc.ProjectID,
		&category,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&status,
		&doc.Version,
		&doc.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	doc.Category = Category(category)
	doc.Status = Status(status)
	return doc, nil
}
