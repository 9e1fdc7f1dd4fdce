// Package db provides PostgreSQL access for the planner library and schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
	sql  *sql.DB
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// SQL returns a database/sql handle sharing the pool, for goose and the
// project repository. The handle is created once and closed with the DB.
func (db *DB) SQL() *sql.DB {
	if db.sql == nil {
		db.sql = stdlib.OpenDBFromPool(db.pool)
	}
	return db.sql
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.sql != nil {
		_ = db.sql.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}
