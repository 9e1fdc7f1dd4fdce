package projects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/types"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("x", 3600)) }
	svc.newID = func() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }
	return svc, repo
}

func TestServiceCreate(t *testing.T) {
	svc, repo := newTestService()
	intake := &types.IntakeData{Organization: &types.Organization{Name: "Mercy", Industry: "healthcare"}}

	project, err := svc.Create(context.Background(), &types.CreateProjectRequest{
		Name:         "Clinic rollout",
		Intake:       intake,
		PainPointIDs: []string{"pp-1", "pp-2", "pp-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", project.ID.String())
	assert.Equal(t, types.ProjectStatusPlanning, project.Status)
	assert.Equal(t, "healthcare", project.Industry)
	assert.Equal(t, []string{"pp-1", "pp-2"}, project.PainPointIDs)
	assert.Equal(t, []string{}, project.UseCaseIDs)
	assert.Equal(t, time.UTC, project.CreatedAt.Location())
	assert.Equal(t, project.CreatedAt, project.UpdatedAt)

	stored, err := repo.GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project, stored)
}

func TestServiceCreate_Invalid(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &types.CreateProjectRequest{})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestServiceGet(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), &types.CreateProjectRequest{Name: "x", Status: types.ProjectStatusDesign})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, types.ProjectStatusDesign, got.Status)

	_, err = svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
