package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByProject(ctx context.Context, projectID string) ([]Document, error)
	MaxVersion(ctx context.Context, projectID string, category Category) (int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
