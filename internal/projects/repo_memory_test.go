package projects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nac-planner/internal/types"
)

func TestMemoryRepo(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	older := types.Project{ID: uuid.New(), Name: "older", CreatedAt: base}
	newer := types.Project{ID: uuid.New(), Name: "newer", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "older", got.Name)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)

	list, err = repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryRepo_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryRepo()
	assert.ErrorIs(t, repo.Create(ctx, types.Project{ID: uuid.New()}), context.Canceled)
	_, err := repo.List(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
