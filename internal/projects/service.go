package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/logging"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

// Service creates and reads projects.
type Service struct {
	repo   Repo
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService constructs a Service over repo.
func NewService(repo Repo, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logging.OrNop(logger),
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Create validates req and stores a new project. Selection ids are
// de-duplicated keeping first occurrence; status defaults to planning.
func (s *Service) Create(ctx context.Context, req *types.CreateProjectRequest) (types.Project, error) {
	if req == nil {
		return types.Project{}, fmt.Errorf("%w: request is required", ErrInvalid)
	}
	if err := req.Validate(); err != nil {
		return types.Project{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	status := req.Status
	if status == "" {
		status = types.ProjectStatusPlanning
	}
	industry := req.Industry
	if industry == "" && req.Intake != nil && req.Intake.Organization != nil {
		industry = req.Intake.Organization.Industry
	}

	now := s.now().UTC()
	project := types.Project{
		ID:             s.newID(),
		Name:           req.Name,
		Customer:       req.Customer,
		Industry:       industry,
		Status:         status,
		Intake:         req.Intake,
		PainPointIDs:   selection.Dedupe(req.PainPointIDs),
		UseCaseIDs:     selection.Dedupe(req.UseCaseIDs),
		RequirementIDs: selection.Dedupe(req.RequirementIDs),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return types.Project{}, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("name", project.Name),
		zap.Int("pain_points", len(project.PainPointIDs)),
		zap.Int("use_cases", len(project.UseCaseIDs)),
		zap.Int("requirements", len(project.RequirementIDs)))

	return project, nil
}

// Get returns the project with the given id string.
func (s *Service) Get(ctx context.Context, id string) (types.Project, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return types.Project{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, parsed)
}

// List returns up to limit projects, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]types.Project, error) {
	return s.repo.List(ctx, limit)
}
