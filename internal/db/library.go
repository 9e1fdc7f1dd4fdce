package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/types"
)

const (
	selectPainPoints   = `SELECT id, title, category, severity, description, tags FROM pain_points ORDER BY sort_order, id`
	selectUseCases     = `SELECT id, name, category, complexity, description, tags FROM use_cases ORDER BY sort_order, id`
	selectRequirements = `SELECT id, title, category, priority, description, tags FROM requirements ORDER BY sort_order, id`
)

// ListPainPoints returns every pain point in library order.
func (db *DB) ListPainPoints(ctx context.Context) ([]types.PainPoint, error) {
	return queryAll[types.PainPoint](ctx, db, selectPainPoints, "pain points")
}

// ListUseCases returns every use case in library order.
func (db *DB) ListUseCases(ctx context.Context) ([]types.UseCase, error) {
	return queryAll[types.UseCase](ctx, db, selectUseCases, "use cases")
}

// ListRequirements returns every requirement in library order.
func (db *DB) ListRequirements(ctx context.Context) ([]types.Requirement, error) {
	return queryAll[types.Requirement](ctx, db, selectRequirements, "requirements")
}

func queryAll[T any](ctx context.Context, db *DB, query, what string) ([]T, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", what, err)
	}
	return items, nil
}

// Load reads the three collections concurrently. DB implements
// library.Source.
func (db *DB) Load(ctx context.Context) (*library.Library, error) {
	var lib library.Library
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := db.ListPainPoints(ctx)
		lib.PainPoints = items
		return err
	})
	g.Go(func() error {
		items, err := db.ListUseCases(ctx)
		lib.UseCases = items
		return err
	})
	g.Go(func() error {
		items, err := db.ListRequirements(ctx)
		lib.Requirements = items
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, &library.LoadError{Source: "postgres", Message: "failed to load library", Cause: err}
	}
	return &lib, nil
}

// ImportLibrary upserts every item of lib in one transaction. Items keep
// their position in lib as sort order. Returns the number of rows written.
func (db *DB) ImportLibrary(ctx context.Context, lib *library.Library) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i, p := range lib.PainPoints {
		batch.Queue(`INSERT INTO pain_points (id, title, category, severity, description, tags, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET title = $2, category = $3, severity = $4,
				description = $5, tags = $6, sort_order = $7, updated_at = NOW()`,
			p.ID, p.Title, p.Category, p.Severity, p.Description, nonNil(p.Tags), i)
	}
	for i, u := range lib.UseCases {
		batch.Queue(`INSERT INTO use_cases (id, name, category, complexity, description, tags, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET name = $2, category = $3, complexity = $4,
				description = $5, tags = $6, sort_order = $7, updated_at = NOW()`,
			u.ID, u.Name, u.Category, u.Complexity, u.Description, nonNil(u.Tags), i)
	}
	for i, r := range lib.Requirements {
		batch.Queue(`INSERT INTO requirements (id, title, category, priority, description, tags, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET title = $2, category = $3, priority = $4,
				description = $5, tags = $6, sort_order = $7, updated_at = NOW()`,
			r.ID, r.Title, r.Category, r.Priority, r.Description, nonNil(r.Tags), i)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to import library: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return batch.Len(), nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
