package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/observability"
	"github.com/jonathan/nac-planner/internal/recommend"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply or dismiss recommendations against a selection file",
	Long: "Derives recommendations from an intake document, dismisses the --dismiss ids, then applies " +
		"each --id in order: the recommendation is resolved to a library item and appended to the " +
		"selection if not already present. The updated selection is written back to --selection " +
		"(or --out).",
	RunE: runApply,
}

var (
	applyIntake    string
	applySelection string
	applyIDs       []string
	applyDismissed []string
	applyOutput    string
)

func init() {
	applyCmd.Flags().StringVarP(&applyIntake, "intake", "i", "", "Path to intake JSON file (required)")
	applyCmd.Flags().StringVarP(&applySelection, "selection", "s", "", "Selection JSON file to read (missing file starts empty)")
	applyCmd.Flags().StringSliceVar(&applyIDs, "id", nil, "Recommendation ids to apply, in order")
	applyCmd.Flags().StringSliceVar(&applyDismissed, "dismiss", nil, "Recommendation ids to dismiss first")
	applyCmd.Flags().StringVarP(&applyOutput, "out", "o", "", "Where to write the selection (defaults to --selection, else stdout)")

	if err := applyCmd.MarkFlagRequired("intake"); err != nil {
		panic(fmt.Sprintf("failed to mark intake flag as required: %v", err))
	}

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	if len(applyIDs) == 0 && len(applyDismissed) == 0 {
		return fmt.Errorf("nothing to do: pass --id and/or --dismiss")
	}

	intake, err := loadIntake(applyIntake, false)
	if err != nil {
		return err
	}
	state, err := loadSelection(applySelection)
	if err != nil {
		return err
	}
	lib, err := loadLibrary(cmd.Context())
	if err != nil {
		return err
	}

	session := recommend.NewSession(lib, state, recommend.WithLogger(logger))
	session.SetIntake(intake)

	for _, id := range applyDismissed {
		session.Dismiss(id)
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	for _, id := range applyIDs {
		result, err := session.ApplyID(id)
		if err != nil {
			return fmt.Errorf("cannot apply %s: %w", id, err)
		}
		logger.Debug("applied", zap.String("id", id), zap.Bool("resolved", result.Resolved))
		printer.PrintApplyResult(result)
	}

	if appConfig.Verbose {
		printer.PrintSelection(session.Selection(), lib)
		printer.PrintRecommendations(session.Recommendations())
	}

	out := applyOutput
	if out == "" {
		out = applySelection
	}
	return writeJSON(cmd.OutOrStdout(), out, session.Selection())
}
