// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintIntake outputs a summary of the intake the recommendations were derived from.
func (p *Printer) PrintIntake(intake *types.IntakeData) {
	if intake == nil {
		return
	}

	var sb strings.Builder
	if org := intake.Organization; org != nil {
		sb.WriteString(fmt.Sprintf("Organization: %s\n", org.Name))
		sb.WriteString(fmt.Sprintf("Industry:     %s\n", org.Industry))
		if org.TotalUsers.IsSet() {
			sb.WriteString(fmt.Sprintf("Users:        %s\n", org.TotalUsers.String()))
		}
		if titles := org.PainPointTitles(); len(titles) > 0 {
			sb.WriteString("\nPain points:\n")
			writeList(&sb, titles, 3)
		}
	} else {
		sb.WriteString("No organization details\n")
	}

	if vendors := intake.VendorEcosystem.Vendors(); len(vendors) > 0 {
		sb.WriteString("\nVendors:\n")
		writeList(&sb, vendors, maxItemsToShow)
	}

	p.printBox("INTAKE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the active recommendations with priority and reason.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO RECOMMENDATIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d recommendations:\n\n", len(recs)))

	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(string(r.Priority)), r.Title))
		sb.WriteString(fmt.Sprintf("  id: %s  type: %s\n", r.ID, r.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", r.Reason))
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", sb.String())
}

// PrintSelection outputs the selected library items per kind, resolving ids to names.
func (p *Printer) PrintSelection(state *selection.State, lib *library.Library) {
	if state == nil {
		return
	}

	var sb strings.Builder
	for i, kind := range selection.Kinds {
		ids := state.IDs(kind)
		sb.WriteString(fmt.Sprintf("%s (%d):\n", kindLabel(kind), len(ids)))
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			name := id
			if lib != nil {
				if item, ok := lib.Get(kind, id); ok {
					name = item.DisplayName()
				}
			}
			names = append(names, name)
		}
		if len(names) == 0 {
			sb.WriteString("  (none)\n")
		} else {
			writeList(&sb, names, maxItemsToShow)
		}
		if i < len(selection.Kinds)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SELECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplyResult outputs what applying a recommendation did.
func (p *Printer) PrintApplyResult(res recommend.ApplyResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", res.RecommendationID))
	switch {
	case !res.Resolved:
		sb.WriteString("No matching library item; dismissed without changes")
	case res.Added:
		sb.WriteString(fmt.Sprintf("Added %s to %s", res.ItemID, kindLabel(res.Kind)))
	default:
		sb.WriteString(fmt.Sprintf("%s already in %s", res.ItemID, kindLabel(res.Kind)))
	}
	p.printBox("APPLIED", sb.String())
}

// PrintViolations outputs any configuration lint findings.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO LINT FINDINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d findings:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		marker := "⚠"
		if v.Severity == types.SeverityError {
			marker = "✖"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, v.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", v.Details))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CONFIG LINT", sb.String())
}

// PrintConfigAnalysis outputs the score and top findings of a configuration review.
func (p *Printer) PrintConfigAnalysis(a *configgen.ConfigAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", a.Score))
	if a.Summary != "" {
		sb.WriteString(a.Summary + "\n")
	}
	if len(a.Findings) > 0 {
		sb.WriteString("\n")
		lines := make([]string, 0, len(a.Findings))
		for _, f := range a.Findings {
			lines = append(lines, fmt.Sprintf("[%s] %s", f.Severity, f.Title))
		}
		writeList(&sb, lines, maxItemsToShow)
	}

	p.printBox("CONFIG ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func kindLabel(kind selection.Kind) string {
	switch kind {
	case selection.KindPainPoints:
		return "Pain points"
	case selection.KindUseCases:
		return "Use cases"
	case selection.KindRequirements:
		return "Requirements"
	}
	return string(kind)
}
