package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/observability"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Derive recommendations from an intake document",
	Long: "Evaluates the rule table against an intake document and prints the resulting " +
		"recommendations, highest priority first. Dismissed ids are excluded.",
	RunE: runRecommend,
}

var (
	recommendIntake    string
	recommendDismissed []string
	recommendOutput    string
	recommendStrict    bool
	recommendBusiness  bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendIntake, "intake", "i", "", "Path to intake JSON file (required)")
	recommendCmd.Flags().StringSliceVar(&recommendDismissed, "dismiss", nil, "Recommendation ids to exclude")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Write recommendations JSON to this file instead of stdout")
	recommendCmd.Flags().BoolVar(&recommendStrict, "strict", false, "Reject intake documents that fail schema validation")
	recommendCmd.Flags().BoolVar(&recommendBusiness, "business-analysis", false, "Also ask the model for an executive summary")

	if err := recommendCmd.MarkFlagRequired("intake"); err != nil {
		panic(fmt.Sprintf("failed to mark intake flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	intake, err := loadIntake(recommendIntake, recommendStrict)
	if err != nil {
		return err
	}

	recs := recommend.Derive(intake, recommend.NewSet(recommendDismissed...))
	if recs == nil {
		recs = []types.Recommendation{}
	}

	out := cmd.OutOrStdout()
	if appConfig.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintIntake(intake)
		printer.PrintRecommendations(recs)
	}

	if err := writeJSON(out, recommendOutput, recs); err != nil {
		return err
	}
	if recommendOutput != "" {
		_, _ = fmt.Fprintf(out, "Wrote %d recommendation(s) to %s\n", len(recs), recommendOutput)
	}

	if !recommendBusiness {
		return nil
	}
	return printBusinessAnalysis(cmd.Context(), cmd, intake, recs)
}

func printBusinessAnalysis(ctx context.Context, cmd *cobra.Command, intake *types.IntakeData, recs []types.Recommendation) error {
	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analysis, err := configgen.NewGenerator(client, nil, logger).BusinessAnalysis(ctx, intake, recs)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nBusiness analysis\n=================\n%s\n", analysis)
	return nil
}
