package validation

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jonathan/nac-planner/internal/types"
)

// ForbiddenCommand is an insecure configuration pattern.
type ForbiddenCommand struct {
	Phrase   string // Matched case-insensitively against the line with comments removed
	Severity string
	Reason   string
}

// DefaultForbiddenCommands are patterns no generated NAC configuration should contain.
var DefaultForbiddenCommands = []ForbiddenCommand{
	{Phrase: "transport input telnet", Severity: types.SeverityError, Reason: "telnet management is unencrypted"},
	{Phrase: "transport input all", Severity: types.SeverityError, Reason: "allows telnet management"},
	{Phrase: "snmp-server community public", Severity: types.SeverityError, Reason: "default SNMP community"},
	{Phrase: "snmp-server community private", Severity: types.SeverityError, Reason: "default SNMP community"},
	{Phrase: "enable password", Severity: types.SeverityError, Reason: "use enable secret"},
	{Phrase: "no service password-encryption", Severity: types.SeverityWarning, Reason: "passwords stored in clear text"},
	{Phrase: "ip http server", Severity: types.SeverityWarning, Reason: "plain HTTP management"},
	{Phrase: "key cisco", Severity: types.SeverityError, Reason: "well-known shared secret"},
	{Phrase: "secret cisco", Severity: types.SeverityError, Reason: "well-known shared secret"},
	{Phrase: "authentication open", Severity: types.SeverityWarning, Reason: "open mode lets unauthenticated traffic through"},
}

// CheckForbiddenCommands reports lines of content that contain a forbidden
// command. Only the first matching command is reported per line.
func CheckForbiddenCommands(content string, commentPrefix string, forbidden []ForbiddenCommand) []types.Violation {
	if len(forbidden) == 0 {
		return []types.Violation{}
	}

	var violations []types.Violation
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		normalizedLine := normalizeForMatching(line, commentPrefix)
		if normalizedLine == "" {
			continue
		}

		for _, cmd := range forbidden {
			phrase := strings.ToLower(strings.TrimSpace(cmd.Phrase))
			if phrase == "" {
				continue
			}
			if strings.Contains(normalizedLine, phrase) {
				severity := cmd.Severity
				if severity == "" {
					severity = types.SeverityError
				}
				violations = append(violations, types.Violation{
					Type:       "forbidden_command",
					Severity:   severity,
					Details:    fmt.Sprintf("Line %d contains %q: %s", lineNum, cmd.Phrase, cmd.Reason),
					LineNumber: intPtr(lineNum),
					Command:    strings.TrimSpace(line),
				})
				break
			}
		}
	}

	return violations
}

// normalizeForMatching lowercases a line, drops comment lines and collapses
// runs of whitespace so "transport  input   telnet" still matches.
func normalizeForMatching(line, commentPrefix string) string {
	trimmed := strings.TrimSpace(line)
	if commentPrefix != "" && strings.HasPrefix(trimmed, commentPrefix) {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
}

func intPtr(i int) *int {
	return &i
}
