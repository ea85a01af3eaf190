package projects

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for tests and local development.
type MemoryRepo struct {
	mu       sync.RWMutex
	projects map[string]Project
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{projects: make(map[string]Project)}
}

// Create stores a project.
func (r *MemoryRepo) Create(ctx context.Context, p Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p
	return nil
}

// GetByID returns a project by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}
