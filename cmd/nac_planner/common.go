package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/nac-planner/internal/db"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/llm"
	"github.com/jonathan/nac-planner/internal/schemas"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

// loadIntake reads an intake document. With strict set the document must
// also pass schema validation; otherwise malformed fields are dropped.
func loadIntake(path string, strict bool) (*types.IntakeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file: %w", err)
	}
	if strict {
		if err := schemas.ValidateIntake(data); err != nil {
			return nil, fmt.Errorf("intake %s is invalid: %w", path, err)
		}
	}

	var intake types.IntakeData
	if err := json.Unmarshal(data, &intake); err != nil {
		return nil, fmt.Errorf("failed to parse intake JSON: %w", err)
	}
	return &intake, nil
}

// loadSelection reads a selection state file. A missing path yields an empty state.
func loadSelection(path string) (*selection.State, error) {
	if path == "" {
		return selection.NewState(nil, nil, nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return selection.NewState(nil, nil, nil), nil
		}
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}

	var state selection.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse selection JSON: %w", err)
	}
	return selection.NewState(state.PainPoints, state.UseCases, state.Requirements), nil
}

// openLibrary returns the configured library source. The database wins over a
// library file when both are set; the returned cleanup closes any connection.
func openLibrary(ctx context.Context) (library.Source, func(), error) {
	switch {
	case appConfig.DatabaseURL != "":
		database, err := db.Connect(ctx, appConfig.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database, database.Close, nil
	case appConfig.LibraryPath != "":
		return library.FileSource{Path: appConfig.LibraryPath}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("no library configured: set --library, NAC_LIBRARY_PATH or DATABASE_URL")
	}
}

// loadLibrary loads one library snapshot from the configured source.
func loadLibrary(ctx context.Context) (*library.Library, error) {
	source, cleanup, err := openLibrary(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return source.Load(ctx)
}

// newLLMClient creates the Gemini client with any configured tier overrides.
func newLLMClient(ctx context.Context) (llm.Client, error) {
	if appConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	cfg := llm.DefaultConfig().WithOverrides(appConfig.ModelLite, appConfig.ModelStandard, appConfig.ModelAdvanced)
	return llm.NewClient(ctx, cfg, appConfig.APIKey)
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := w.Write(data)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// parseKind maps a CLI kind name to a selection kind.
func parseKind(name string) (selection.Kind, error) {
	switch strings.ReplaceAll(strings.ToLower(name), "_", "-") {
	case "pain-points":
		return selection.KindPainPoints, nil
	case "use-cases":
		return selection.KindUseCases, nil
	case "requirements":
		return selection.KindRequirements, nil
	}
	return "", fmt.Errorf("unknown library kind %q (want pain-points, use-cases or requirements)", name)
}
