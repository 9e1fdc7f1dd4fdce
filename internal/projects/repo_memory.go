package projects

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/nac-planner/internal/types"
)

// MemoryRepo stores projects in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]types.Project
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[uuid.UUID]types.Project)}
}

// Create stores the project.
func (r *MemoryRepo) Create(ctx context.Context, project types.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[project.ID] = project
	return nil
}

// GetByID returns a project by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (types.Project, error) {
	if err := ctx.Err(); err != nil {
		return types.Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.byID[id]
	if !ok {
		return types.Project{}, ErrNotFound
	}
	return project, nil
}

// List returns up to limit projects, newest first.
func (r *MemoryRepo) List(ctx context.Context, limit int) ([]types.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	r.mu.RLock()
	out := make([]types.Project, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
