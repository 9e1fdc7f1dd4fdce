// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults
const (
	DefaultPort            = 8080
	DefaultLibraryCacheTTL = 5 * time.Minute
)

// Config represents the planner configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Data sources
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	LibraryPath string `json:"library_path,omitempty"` // Library JSON file used when no database is configured

	// Server
	Port            int    `json:"port,omitempty"`
	LibraryCacheTTL string `json:"library_cache_ttl,omitempty"` // Go duration, e.g. "5m"

	// LLM
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	ModelLite     string `json:"model_lite,omitempty"`     // Override for the lite tier
	ModelStandard string `json:"model_standard,omitempty"` // Override for the standard tier
	ModelAdvanced string `json:"model_advanced,omitempty"` // Override for the advanced tier

	Verbose bool `json:"verbose,omitempty"` // Debug logging and boxed summaries
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Call godotenv.Load first
// to pick up a local .env file.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LibraryPath:     os.Getenv("NAC_LIBRARY_PATH"),
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		LibraryCacheTTL: os.Getenv("LIBRARY_CACHE_TTL"),
		ModelLite:       os.Getenv("GEMINI_MODEL_LITE"),
		ModelStandard:   os.Getenv("GEMINI_MODEL_STANDARD"),
		ModelAdvanced:   os.Getenv("GEMINI_MODEL_ADVANCED"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if verbose, err := strconv.ParseBool(os.Getenv("NAC_VERBOSE")); err == nil {
		cfg.Verbose = verbose
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the command.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.LibraryCacheTTL != "" {
		ttl, err := time.ParseDuration(c.LibraryCacheTTL)
		if err != nil {
			return fmt.Errorf("config error: 'library_cache_ttl' is not a duration: %w", err)
		}
		if ttl < 0 {
			return fmt.Errorf("config error: 'library_cache_ttl' must be non-negative")
		}
	}

	if c.LibraryPath != "" {
		if _, err := os.Stat(c.LibraryPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: library file not found: %s", c.LibraryPath)
		}
	}

	return nil
}

// CacheTTL returns the parsed library cache TTL, or the default when unset or invalid.
func (c *Config) CacheTTL() time.Duration {
	if c.LibraryCacheTTL == "" {
		return DefaultLibraryCacheTTL
	}
	ttl, err := time.ParseDuration(c.LibraryCacheTTL)
	if err != nil || ttl < 0 {
		return DefaultLibraryCacheTTL
	}
	return ttl
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer file values over environment values, and flags over both.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LibraryPath == "" {
		result.LibraryPath = defaults.LibraryPath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LibraryCacheTTL == "" {
		result.LibraryCacheTTL = defaults.LibraryCacheTTL
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so only true propagates
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
