package configgen

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/llm"
	"github.com/jonathan/nac-planner/internal/logging"
	"github.com/jonathan/nac-planner/internal/prompts"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
	"github.com/jonathan/nac-planner/internal/validation"
	"github.com/jonathan/nac-planner/internal/vendors"
)

// GeneratedConfig is a post-processed device configuration.
type GeneratedConfig struct {
	Vendor      string            `json:"vendor"`
	Model       string            `json:"model"`
	Syntax      vendors.Syntax    `json:"syntax"`
	Content     string            `json:"content"`
	Sections    []Section         `json:"sections"`
	AuthSummary []string          `json:"auth_summary"`
	Lint        *types.Violations `json:"lint"`
	Warnings    []string          `json:"warnings,omitempty"`
	LLMModel    string            `json:"llm_model"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Generator turns requests into device configurations using a model client.
type Generator struct {
	client llm.Client
	lib    *library.Library
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a Generator. lib may be nil, in which case use case and
// requirement ids are passed to the model verbatim.
func NewGenerator(client llm.Client, lib *library.Library, logger *zap.Logger) *Generator {
	return &Generator{
		client: client,
		lib:    lib,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// BuildPrompt renders the device configuration prompt for a validated request.
func BuildPrompt(req *Request, lib *library.Library) (string, error) {
	vendor, err := vendors.Resolve(req.Vendor)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	return prompts.Render(prompts.ConfigGen, prompts.KeyDeviceConfig, map[string]string{
		"Vendor":         vendor.ID,
		"VendorName":     vendor.Name,
		"Model":          req.Model,
		"Firmware":       req.firmware(),
		"Syntax":         string(vendor.Syntax),
		"CommentPrefix":  vendor.Syntax.CommentPrefix(),
		"DeploymentType": req.DeploymentType,
		"AuthMethods":    strings.Join(req.AuthMethods, ", "),
		"SecurityLevel":  req.securityLevel(),
		"UseCases":       bulletList(resolveNames(lib, selection.KindUseCases, req.UseCaseIDs)),
		"Requirements":   bulletList(resolveNames(lib, selection.KindRequirements, req.RequirementIDs)),
		"ExtraContext":   orNone(req.ExtraContext),
	})
}

// Generate validates req, asks the advanced tier for a configuration and
// post-processes the result.
func (g *Generator) Generate(ctx context.Context, req *Request) (*GeneratedConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	vendor, _ := vendors.Resolve(req.Vendor)

	prompt, err := BuildPrompt(req, g.lib)
	if err != nil {
		return nil, err
	}
	system, err := prompts.Get(prompts.ConfigGen, prompts.KeyDeviceSystem)
	if err != nil {
		return nil, err
	}

	g.logger.Info("generating device configuration",
		zap.String("vendor", vendor.ID),
		zap.String("model", req.Model),
		zap.String("llm_model", g.client.Model(llm.TierAdvanced)))

	raw, err := g.client.Generate(ctx, llm.Request{
		System: system,
		Prompt: prompt,
		Tier:   llm.TierAdvanced,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate configuration: %w", err)
	}

	content := CleanOutput(raw)
	if content == "" {
		return nil, fmt.Errorf("model returned an empty configuration")
	}

	out := &GeneratedConfig{
		Vendor:      vendor.ID,
		Model:       req.Model,
		Syntax:      vendor.Syntax,
		Content:     content,
		Sections:    SplitSections(content, vendor.Syntax.CommentPrefix()),
		AuthSummary: AuthSummary(content),
		Lint:        validation.Lint(content, vendor.Syntax, nil),
		LLMModel:    g.client.Model(llm.TierAdvanced),
		GeneratedAt: g.now().UTC(),
	}
	out.Warnings = warningsFor(vendor, req, out)

	g.logger.Debug("configuration generated",
		zap.Int("sections", len(out.Sections)),
		zap.Int("auth_lines", len(out.AuthSummary)),
		zap.Int("lint_findings", len(out.Lint.Violations)))

	return out, nil
}

func warningsFor(vendor vendors.Vendor, req *Request, out *GeneratedConfig) []string {
	var warnings []string
	if !vendor.SupportsModel(req.Model) {
		warnings = append(warnings, fmt.Sprintf("model %q is not in the %s catalog; verify command support", req.Model, vendor.Name))
	}
	if len(out.AuthSummary) == 0 {
		warnings = append(warnings, "no AAA, RADIUS or 802.1X commands found in output")
	}
	if out.Lint.HasErrors() {
		warnings = append(warnings, "configuration contains insecure commands; review lint findings")
	}
	return warnings
}

func resolveNames(lib *library.Library, kind selection.Kind, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	if lib == nil {
		return append([]string(nil), ids...)
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if item, ok := lib.Get(kind, id); ok {
			names = append(names, item.DisplayName())
		} else {
			names = append(names, id)
		}
	}
	return names
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- none specified"
	}
	return "- " + strings.Join(items, "\n- ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
