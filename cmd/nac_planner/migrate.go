package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/db"
	"github.com/jonathan/nac-planner/internal/library"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and optionally seed the library",
	RunE:  runMigrate,
}

var (
	migrateSeed   string
	migrateStatus bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateSeed, "seed", "", "Library JSON file to upsert after migrating")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Only print the current schema version")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if appConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	ctx := cmd.Context()

	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	if !migrateStatus {
		if err := db.RunMigrations(ctx, database.SQL()); err != nil {
			return err
		}
	}
	version, err := db.MigrationVersion(ctx, database.SQL())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Schema version: %d\n", version)

	if migrateStatus || migrateSeed == "" {
		return nil
	}

	data, err := os.ReadFile(migrateSeed)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	lib, err := library.Parse(data, migrateSeed)
	if err != nil {
		return err
	}
	count, err := database.ImportLibrary(ctx, lib)
	if err != nil {
		return err
	}
	logger.Info("library seeded", zap.String("file", migrateSeed), zap.Int("items", count))
	_, _ = fmt.Fprintf(out, "Imported %d library item(s) from %s\n", count, migrateSeed)
	return nil
}
