package documents

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the file to object storage and records a new version of the
// document category. New uploads start as pending_review.
func (s *Service) Upload(ctx context.Context, projectID, rawCategory, fileName string, r io.Reader) (Document, error) {
	if projectID == "" || fileName == "" {
		return Document{}, ErrInvalidInput
	}
	category, ok := ParseCategory(rawCategory)
	if !ok {
		return Document{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, projectID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	maxVersion, err := s.Repo.MaxVersion(ctx, projectID, category)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Category:   category,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		Status:     StatusPendingReview,
		Version:    maxVersion + 1,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// List returns all documents for a project.
func (s *Service) List(ctx context.Context, projectID string) ([]Document, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByProject(ctx, projectID)
}

// SetStatus updates a document's review status.
func (s *Service) SetStatus(ctx context.Context, id, rawStatus string) (Document, error) {
	if id == "" {
		return Document{}, ErrInvalidInput
	}
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return Document{}, ErrInvalidInput
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return Document{}, err
	}
	return s.Repo.GetByID(ctx, id)
}
