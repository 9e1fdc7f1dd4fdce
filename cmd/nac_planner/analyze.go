package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/observability"
	"github.com/jonathan/nac-planner/internal/validation"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Review a device configuration for NAC readiness with the model",
	Long:  "Lints a device configuration locally, then asks the standard model tier to score its 802.1X readiness and list findings.",
	RunE:  runAnalyze,
}

var (
	analyzeInput  string
	analyzeVendor string
	analyzeOutput string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to configuration file (required)")
	analyzeCmd.Flags().StringVar(&analyzeVendor, "vendor", "", "Vendor id")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the analysis JSON to this file")

	if err := analyzeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	syntax, err := syntaxFor(analyzeVendor)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analysis, err := configgen.NewGenerator(client, nil, logger).Analyze(ctx, analyzeVendor, string(content))
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintConfigAnalysis(analysis)
	printer.PrintViolations(validation.Lint(string(content), syntax, nil))

	if analyzeOutput != "" {
		return writeJSON(cmd.OutOrStdout(), analyzeOutput, analysis)
	}
	return nil
}
