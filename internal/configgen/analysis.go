package configgen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/llm"
	"github.com/jonathan/nac-planner/internal/prompts"
	"github.com/jonathan/nac-planner/internal/types"
)

// Finding severities, most severe first.
var severityOrder = map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}

// Finding is one issue reported by configuration analysis.
type Finding struct {
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Detail         string `json:"detail"`
	Recommendation string `json:"recommendation"`
}

// ConfigAnalysis is the structured result of reviewing a configuration.
type ConfigAnalysis struct {
	Score    int       `json:"score"`
	Summary  string    `json:"summary"`
	Findings []Finding `json:"findings"`
}

// normalize clamps the score, lowercases severities (unknown becomes medium)
// and orders findings most severe first.
func (a *ConfigAnalysis) normalize() {
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
	for i := range a.Findings {
		sev := strings.ToLower(strings.TrimSpace(a.Findings[i].Severity))
		if _, ok := severityOrder[sev]; !ok {
			sev = "medium"
		}
		a.Findings[i].Severity = sev
	}
	sort.SliceStable(a.Findings, func(i, j int) bool {
		return severityOrder[a.Findings[i].Severity] < severityOrder[a.Findings[j].Severity]
	})
	if a.Findings == nil {
		a.Findings = []Finding{}
	}
}

// Analyze asks the standard tier to review content. vendor may be empty.
func (g *Generator) Analyze(ctx context.Context, vendor, content string) (*ConfigAnalysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: configuration content is required", ErrInvalidRequest)
	}
	if vendor == "" {
		vendor = "unknown"
	}

	preamble, err := prompts.Render(prompts.ConfigGen, prompts.KeyConfigAnalysis, map[string]string{"Vendor": vendor})
	if err != nil {
		return nil, err
	}
	schema := llm.ConfigAnalysisSchema()
	schema.Description = preamble + "\n" + schema.Description

	raw, err := g.client.Generate(ctx, llm.Request{
		Prompt: llm.BuildStructuredPrompt(schema, content),
		Tier:   llm.TierStandard,
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze configuration: %w", err)
	}

	var analysis ConfigAnalysis
	if err := llm.DecodeJSON(raw, &analysis); err != nil {
		return nil, fmt.Errorf("failed to analyze configuration: %w", err)
	}
	analysis.normalize()

	g.logger.Info("configuration analyzed",
		zap.String("vendor", vendor),
		zap.Int("score", analysis.Score),
		zap.Int("findings", len(analysis.Findings)))

	return &analysis, nil
}

// BusinessAnalysis asks the advanced tier for an executive summary of the
// intake and the recommendations currently shown.
func (g *Generator) BusinessAnalysis(ctx context.Context, intake *types.IntakeData, recs []types.Recommendation) (string, error) {
	if intake == nil || intake.Organization == nil {
		return "", fmt.Errorf("%w: organization details are required", ErrInvalidRequest)
	}
	org := intake.Organization

	prompt, err := prompts.Render(prompts.ConfigGen, prompts.KeyBusinessAnalysis, map[string]string{
		"Organization":    orUnknown(org.Name),
		"Industry":        orUnknown(org.Industry),
		"Users":           orUnknown(org.TotalUsers.String()),
		"Sites":           orUnknown(org.SiteCount.String()),
		"Vendors":         vendorLines(intake.VendorEcosystem),
		"PainPoints":      bulletList(org.PainPointTitles()),
		"Recommendations": recommendationLines(recs),
	})
	if err != nil {
		return "", err
	}

	text, err := g.client.Generate(ctx, llm.Request{Prompt: prompt, Tier: llm.TierAdvanced, Temperature: 0.5})
	if err != nil {
		return "", fmt.Errorf("failed to generate business analysis: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func vendorLines(eco types.VendorEcosystem) string {
	if len(eco) == 0 {
		return "- none specified"
	}
	var lines []string
	for _, category := range sortedKeys(eco) {
		if len(eco[category]) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", category, strings.Join(eco[category], ", ")))
	}
	return bulletList(lines)
}

func recommendationLines(recs []types.Recommendation) string {
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", r.Priority, r.Title, r.Reason))
	}
	return bulletList(lines)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
