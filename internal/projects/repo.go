package projects

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the project does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for projects.
type Repo interface {
	Create(ctx context.Context, p Project) error
	GetByID(ctx context.Context, id string) (Project, error)
}
