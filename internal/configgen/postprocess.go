package configgen

import (
	"strings"

	"github.com/jonathan/nac-planner/internal/llm"
)

// Section is a banner-delimited block of configuration.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// authPrefixes mark command lines that belong in the authentication summary.
// Junos "set " and FortiOS "config " prefixes are stripped before matching.
var authPrefixes = []string{
	"aaa ", "radius", "dot1x", "mab", "authentication ", "access-session",
	"access radius", "protocols dot1x", "user radius", "port-access", "802.1x",
}

// CleanOutput strips markdown fences from model output.
func CleanOutput(raw string) string {
	return llm.CleanCodeBlock(raw)
}

// SplitSections splits content on banner comment lines. A banner is a line
// starting with commentPrefix followed by text; a bare prefix line is a
// separator. Lines before the first banner go to an untitled section, which is
// omitted when empty.
func SplitSections(content, commentPrefix string) []Section {
	var sections []Section
	current := Section{}

	flush := func() {
		if current.Title != "" || len(current.Lines) > 0 {
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, commentPrefix) {
			title := strings.TrimSpace(strings.Trim(trimmed, commentPrefix+" =-*"))
			if title == "" {
				continue
			}
			flush()
			current = Section{Title: title}
			continue
		}
		if trimmed == "" {
			continue
		}
		current.Lines = append(current.Lines, strings.TrimRight(line, " \t\r"))
	}
	flush()

	return sections
}

// AuthSummary returns the AAA, RADIUS and 802.1X command lines in content, trimmed.
func AuthSummary(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		lower = strings.TrimPrefix(lower, "set ")
		lower = strings.TrimPrefix(lower, "config ")
		lower = strings.TrimPrefix(lower, "no ")
		for _, p := range authPrefixes {
			if strings.HasPrefix(lower, p) {
				out = append(out, trimmed)
				break
			}
		}
	}
	return out
}
