package validation

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jonathan/nac-planner/internal/types"
)

// DefaultMaxLineLength is the longest command line most device CLIs accept
// when pasted into a terminal session.
const DefaultMaxLineLength = 255

// CheckLineLengths reports lines longer than maxChars.
func CheckLineLengths(content string, maxChars int) []types.Violation {
	if maxChars <= 0 {
		return nil
	}

	var violations []types.Violation
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if n := len(line); n > maxChars {
			violations = append(violations, types.Violation{
				Type:       "line_too_long",
				Severity:   types.SeverityWarning,
				Details:    fmt.Sprintf("Line %d has %d characters, maximum is %d", lineNum, n, maxChars),
				LineNumber: intPtr(lineNum),
			})
		}
	}
	return violations
}
