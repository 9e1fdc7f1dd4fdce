// Package main provides the nac_planner CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/config"
	"github.com/jonathan/nac-planner/internal/logging"
)

var (
	configPath  string
	verbose     bool
	libraryPath string
	databaseURL string

	// Populated by PersistentPreRunE
	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "nac_planner",
	Short: "NAC deployment planner",
	Long: "nac_planner derives network access control recommendations from project intake data, " +
		"manages the selected pain points, use cases and requirements, and generates device configurations.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and boxed summaries")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "Library JSON file (overrides NAC_LIBRARY_PATH)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (overrides DATABASE_URL)")
}

// setup layers flags over the config file over the environment and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *fileCfg
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if libraryPath != "" {
		cfg.LibraryPath = libraryPath
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	cfg.Verbose = cfg.Verbose || verbose

	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	l, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
