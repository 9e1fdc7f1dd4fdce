package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, migrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_library.sql", "00002_projects.sql"}, names)
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, migrationsDir)
	require.NoError(t, err)

	for _, e := range entries {
		data, err := fs.ReadFile(migrationFiles, migrationsDir+"/"+e.Name())
		require.NoError(t, err)
		content := string(data)
		assert.True(t, strings.Contains(content, "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(content, "-- +goose Down"), e.Name())
	}
}

func TestRunMigrations_NilDatabase(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil))
}

func TestConnect_EmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is empty")
}

func TestLibraryQueriesSelectScannedColumns(t *testing.T) {
	for _, q := range []string{selectPainPoints, selectUseCases, selectRequirements} {
		assert.Contains(t, q, "description, tags FROM")
		assert.Contains(t, q, "ORDER BY sort_order, id")
	}
}
