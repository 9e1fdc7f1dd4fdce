// Package projects persists NAC deployment projects created from a planning session.
package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/nac-planner/internal/types"
)

var (
	// ErrNotFound indicates the project does not exist.
	ErrNotFound = errors.New("project not found")
	// ErrInvalid wraps request validation failures.
	ErrInvalid = errors.New("invalid project")
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Repo defines persistence operations for projects.
type Repo interface {
	Create(ctx context.Context, project types.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (types.Project, error)
	// List returns projects newest first.
	List(ctx context.Context, limit int) ([]types.Project, error)
}
