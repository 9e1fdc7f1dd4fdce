package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/observability"
	"github.com/jonathan/nac-planner/internal/schemas"
)

var validateIntakeCmd = &cobra.Command{
	Use:   "validate-intake <file>",
	Short: "Validate an intake document against the intake schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateIntake,
}

func init() {
	rootCmd.AddCommand(validateIntakeCmd)
}

func runValidateIntake(cmd *cobra.Command, args []string) error {
	err := schemas.ValidateFile(schemas.IntakeSchema, args[0])
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Intake has %d problem(s):\n", len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("intake validation found %d problem(s)", len(validationErr.Errors))
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Intake valid: %s\n", args[0])
	if appConfig.Verbose {
		intake, err := loadIntake(args[0], false)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.ErrOrStderr()).PrintIntake(intake)
	}
	return nil
}
