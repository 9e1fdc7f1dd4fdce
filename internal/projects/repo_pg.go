package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/nac-planner/internal/types"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const projectColumns = `id, name, customer, industry, status, intake, pain_point_ids, use_case_ids, requirement_ids, created_at, updated_at`

// Create inserts a new project.
func (r *PGRepo) Create(ctx context.Context, project types.Project) error {
	const query = `
INSERT INTO projects (` + projectColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	intake, err := marshalJSONB(project.Intake)
	if err != nil {
		return err
	}
	painPoints, err := marshalIDs(project.PainPointIDs)
	if err != nil {
		return err
	}
	useCases, err := marshalIDs(project.UseCaseIDs)
	if err != nil {
		return err
	}
	requirements, err := marshalIDs(project.RequirementIDs)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Customer,
		project.Industry,
		project.Status,
		intake,
		painPoints,
		useCases,
		requirements,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID returns a project by its ID.
func (r *PGRepo) GetByID(ctx context.Context, id uuid.UUID) (types.Project, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Project{}, ErrNotFound
	}
	if err != nil {
		return types.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// List returns up to limit projects, newest first.
func (r *PGRepo) List(ctx context.Context, limit int) ([]types.Project, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []types.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (types.Project, error) {
	var (
		p                                     types.Project
		intake                                []byte
		painPoints, useCases, requirementsRaw []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Customer,
		&p.Industry,
		&p.Status,
		&intake,
		&painPoints,
		&useCases,
		&requirementsRaw,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return types.Project{}, err
	}

	if len(intake) > 0 && string(intake) != "null" {
		p.Intake = &types.IntakeData{}
		if err := json.Unmarshal(intake, p.Intake); err != nil {
			return types.Project{}, fmt.Errorf("invalid intake JSON: %w", err)
		}
	}
	var err error
	if p.PainPointIDs, err = unmarshalIDs(painPoints); err != nil {
		return types.Project{}, err
	}
	if p.UseCaseIDs, err = unmarshalIDs(useCases); err != nil {
		return types.Project{}, err
	}
	if p.RequirementIDs, err = unmarshalIDs(requirementsRaw); err != nil {
		return types.Project{}, err
	}
	return p, nil
}

// marshalJSONB returns nil for a nil value so the column stores SQL NULL.
func marshalJSONB(v *types.IntakeData) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intake: %w", err)
	}
	return b, nil
}

func marshalIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ids: %w", err)
	}
	return b, nil
}

func unmarshalIDs(raw []byte) ([]string, error) {
	ids := []string{}
	if len(raw) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("invalid id list JSON: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
