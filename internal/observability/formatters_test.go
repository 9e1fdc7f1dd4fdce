package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

func TestPrintIntake(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIntake(&types.IntakeData{
		Organization: &types.Organization{
			Name:       "Mercy Health",
			Industry:   "healthcare",
			TotalUsers: types.UsersNumber(1200),
			PainPoints: []types.PainPointEntry{types.PainPointText("IoT sprawl")},
		},
		VendorEcosystem: types.VendorEcosystem{"switching": {"cisco"}},
	})
	output := buf.String()

	assert.Contains(t, output, "INTAKE")
	assert.Contains(t, output, "Mercy Health")
	assert.Contains(t, output, "1200")
	assert.Contains(t, output, "IoT sprawl")
	assert.Contains(t, output, "cisco")
}

func TestPrintIntake_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintIntake(nil)
	assert.Empty(t, buf.String())
}

func TestPrintIntake_NoOrganization(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintIntake(&types.IntakeData{})
	assert.Contains(t, buf.String(), "No organization details")
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]types.Recommendation{
		{ID: "healthcare_hipaa", Type: types.RecommendationRequirement, Title: "HIPAA Compliance", Priority: types.PriorityHigh, Reason: "Healthcare organization"},
		{ID: "cisco_integration", Type: types.RecommendationUseCase, Title: "Cisco ISE Integration", Priority: types.PriorityMedium},
	})
	output := buf.String()

	assert.Contains(t, output, "2 recommendations")
	assert.Contains(t, output, "[HIGH] HIPAA Compliance")
	assert.Contains(t, output, "id: cisco_integration")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendations(nil)
	assert.Contains(t, buf.String(), "NO RECOMMENDATIONS")
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	lib := &library.Library{
		Requirements: []types.Requirement{{ID: "req-1", Title: "HIPAA Audit Logging"}},
	}
	state := selection.NewState(nil, nil, []string{"req-1", "req-unknown"})

	NewPrinter(&buf).PrintSelection(state, lib)
	output := buf.String()

	assert.Contains(t, output, "Pain points (0)")
	assert.Contains(t, output, "(none)")
	assert.Contains(t, output, "Requirements (2)")
	assert.Contains(t, output, "HIPAA Audit Logging")
	assert.Contains(t, output, "req-unknown")
}

func TestPrintApplyResult(t *testing.T) {
	tests := []struct {
		name string
		res  recommend.ApplyResult
		want string
	}{
		{name: "added", res: recommend.ApplyResult{RecommendationID: "r", Resolved: true, Added: true, ItemID: "req-1", Kind: selection.KindRequirements}, want: "Added req-1 to Requirements"},
		{name: "present", res: recommend.ApplyResult{RecommendationID: "r", Resolved: true, ItemID: "req-1", Kind: selection.KindRequirements}, want: "req-1 already in Requirements"},
		{name: "unresolved", res: recommend.ApplyResult{RecommendationID: "r"}, want: "No matching library item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintApplyResult(tt.res)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(&types.Violations{Violations: []types.Violation{
		{Type: "forbidden_command", Severity: types.SeverityError, Details: "Line 3 contains telnet"},
		{Type: "line_too_long", Severity: types.SeverityWarning, Details: "Line 9 too long"},
	}})
	output := buf.String()

	assert.Contains(t, output, "Found 2 findings")
	assert.Contains(t, output, "✖ forbidden_command")
	assert.Contains(t, output, "⚠ line_too_long")
}

func TestPrintViolations_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(nil)
	assert.Contains(t, buf.String(), "NO LINT FINDINGS")
}

func TestPrintConfigAnalysis(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintConfigAnalysis(&configgen.ConfigAnalysis{
		Score:    62,
		Summary:  "CoA missing",
		Findings: []configgen.Finding{{Severity: "high", Title: "No CoA"}},
	})
	output := buf.String()
	assert.Contains(t, output, "Score: 62/100")
	assert.Contains(t, output, "[high] No CoA")
}

func TestPrintBox_TruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("é", 100))
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestWriteList_Overflow(t *testing.T) {
	var sb strings.Builder
	writeList(&sb, []string{"a", "b", "c", "d"}, 2)
	assert.Equal(t, "  • a\n  • b\n  ... and 2 more\n", sb.String())
}
