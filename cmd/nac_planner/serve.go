package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/db"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/projects"
	"github.com/jonathan/nac-planner/internal/server"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the library, recommendation sessions, projects and
configuration generation. With DATABASE_URL the library and projects are read from PostgreSQL;
otherwise the library comes from a JSON file and projects are kept in memory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, else 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := server.Config{
		Port:   appConfig.Port,
		Logger: logger,
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	var source library.Source
	switch {
	case appConfig.DatabaseURL != "":
		database, err := db.Connect(ctx, appConfig.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if serveMigrate {
			if err := db.RunMigrations(ctx, database.SQL()); err != nil {
				database.Close()
				return err
			}
		}
		source = database
		cfg.Projects = &projects.PGRepo{DB: database.SQL()}
		cfg.OnShutdown = database.Close
	case appConfig.LibraryPath != "":
		source = library.FileSource{Path: appConfig.LibraryPath}
		logger.Warn("no DATABASE_URL set, projects are kept in memory")
	default:
		return fmt.Errorf("DATABASE_URL or a library file is required")
	}
	cfg.Library = library.NewCachedSource(source, appConfig.CacheTTL(), logger)

	cleanup := func() {
		if cfg.LLM != nil {
			_ = cfg.LLM.Close()
		}
		if cfg.OnShutdown != nil {
			cfg.OnShutdown()
		}
	}

	// Fail at startup rather than on the first request
	lib, err := cfg.Library.Load(ctx)
	if err != nil {
		cleanup()
		return fmt.Errorf("failed to load library: %w", err)
	}
	logger.Info("library loaded", zap.Int("items", lib.Size()))

	if appConfig.APIKey != "" {
		client, err := newLLMClient(ctx)
		if err != nil {
			cleanup()
			return err
		}
		cfg.LLM = client
	} else {
		logger.Warn("no GEMINI_API_KEY set, configuration generation and analysis are disabled")
	}

	srv, err := server.New(cfg)
	if err != nil {
		cleanup()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving", zap.Int("port", cfg.Port), zap.Bool("llm", cfg.LLM != nil))
	return srv.Start()
}
