package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/observability"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate a NAC device configuration with the model",
	Long: "Builds a vendor-specific 802.1X / MAB configuration prompt from the requested device, " +
		"use cases and requirements, asks the advanced model tier for a configuration, and lints the result.",
	RunE: runGenerateConfig,
}

var (
	genVendor       string
	genModel        string
	genFirmware     string
	genDeployment   string
	genAuthMethods  []string
	genUseCases     []string
	genRequirements []string
	genSecurity     string
	genContext      string
	genOutput       string
	genReport       string
)

func init() {
	f := generateConfigCmd.Flags()
	f.StringVar(&genVendor, "vendor", "", "Vendor id, see 'nac_planner vendors' (required)")
	f.StringVar(&genModel, "model", "", "Device model (required)")
	f.StringVar(&genFirmware, "firmware", "", "Firmware version")
	f.StringVar(&genDeployment, "deployment", configgen.DeploymentWired, "wired, wireless or hybrid")
	f.StringSliceVar(&genAuthMethods, "auth", []string{"dot1x", "mab"}, "Authentication methods: dot1x, mab, webauth")
	f.StringSliceVar(&genUseCases, "use-case", nil, "Use case ids from the library")
	f.StringSliceVar(&genRequirements, "requirement", nil, "Requirement ids from the library")
	f.StringVar(&genSecurity, "security-level", "", "standard, high or maximum")
	f.StringVar(&genContext, "context", "", "Extra free-text context for the model")
	f.StringVarP(&genOutput, "out", "o", "", "Write the configuration text here instead of stdout")
	f.StringVar(&genReport, "report", "", "Write the full result (sections, lint, warnings) as JSON here")

	for _, name := range []string{"vendor", "model"} {
		if err := generateConfigCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(generateConfigCmd)
}

func runGenerateConfig(cmd *cobra.Command, _ []string) error {
	req := &configgen.Request{
		Vendor:         genVendor,
		Model:          genModel,
		Firmware:       genFirmware,
		DeploymentType: genDeployment,
		AuthMethods:    genAuthMethods,
		UseCaseIDs:     genUseCases,
		RequirementIDs: genRequirements,
		SecurityLevel:  genSecurity,
		ExtraContext:   genContext,
	}
	// Fail fast before creating a client
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	// The library only improves the prompt; run without it when none is configured
	var lib *library.Library
	if appConfig.LibraryPath != "" || appConfig.DatabaseURL != "" {
		loaded, err := loadLibrary(ctx)
		if err != nil {
			return err
		}
		lib = loaded
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out, err := configgen.NewGenerator(client, lib, logger).Generate(ctx, req)
	if err != nil {
		return err
	}

	if genOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Content)
	} else {
		if err := os.WriteFile(genOutput, []byte(out.Content+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", genOutput)
	}
	if genReport != "" {
		if err := writeJSON(cmd.OutOrStdout(), genReport, out); err != nil {
			return err
		}
	}

	stderr := cmd.ErrOrStderr()
	for _, w := range out.Warnings {
		_, _ = fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	if appConfig.Verbose || out.Lint.HasErrors() {
		observability.NewPrinter(stderr).PrintViolations(out.Lint)
	}
	return nil
}
