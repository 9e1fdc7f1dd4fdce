package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/observability"
	"github.com/jonathan/nac-planner/internal/validation"
	"github.com/jonathan/nac-planner/internal/vendors"
)

var lintConfigCmd = &cobra.Command{
	Use:   "lint-config",
	Short: "Check a device configuration for insecure or missing NAC commands",
	Long:  "Checks a device configuration for forbidden commands, missing AAA / RADIUS / 802.1X stanzas and overlong lines.",
	RunE:  runLintConfig,
}

var (
	lintInput     string
	lintVendor    string
	lintMaxLength int
	lintOutput    string
)

func init() {
	lintConfigCmd.Flags().StringVarP(&lintInput, "in", "i", "", "Path to configuration file (required)")
	lintConfigCmd.Flags().StringVar(&lintVendor, "vendor", "", "Vendor id; selects the syntax rules (default generic)")
	lintConfigCmd.Flags().IntVar(&lintMaxLength, "max-line-length", validation.DefaultMaxLineLength, "Maximum characters per line, negative disables")
	lintConfigCmd.Flags().StringVarP(&lintOutput, "out", "o", "", "Path to output Violations JSON file")

	if err := lintConfigCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(lintConfigCmd)
}

// syntaxFor returns the syntax of a vendor id, or generic when id is empty.
func syntaxFor(id string) (vendors.Syntax, error) {
	if id == "" {
		return vendors.SyntaxGeneric, nil
	}
	vendor, err := vendors.Resolve(id)
	if err != nil {
		return "", err
	}
	return vendor.Syntax, nil
}

func runLintConfig(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(lintInput); os.IsNotExist(err) {
		return fmt.Errorf("configuration file not found: %s", lintInput)
	}
	syntax, err := syntaxFor(lintVendor)
	if err != nil {
		return err
	}

	violations, err := validation.LintFile(lintInput, syntax, &validation.Options{MaxLineLength: lintMaxLength})
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	if lintOutput != "" {
		if err := writeJSON(cmd.OutOrStdout(), lintOutput, violations); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(violations.Violations) == 0 {
		_, _ = fmt.Fprintf(out, "Lint passed: No violations found\n")
		return nil
	}

	observability.NewPrinter(out).PrintViolations(violations)
	if !violations.HasErrors() {
		_, _ = fmt.Fprintf(out, "Lint found %d warning(s)\n", len(violations.Violations))
		return nil
	}

	// Return error to indicate violations were found (exit code 1)
	return fmt.Errorf("lint found %d violation(s)", len(violations.Violations))
}
