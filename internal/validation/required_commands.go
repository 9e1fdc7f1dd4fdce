package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/nac-planner/internal/types"
	"github.com/jonathan/nac-planner/internal/vendors"
)

// RequiredCommand is a stanza a NAC configuration must contain for a syntax.
// Any one of the alternatives satisfies it.
type RequiredCommand struct {
	Name         string
	Alternatives []string
}

var requiredBySyntax = map[vendors.Syntax][]RequiredCommand{
	vendors.SyntaxIOS: {
		{Name: "AAA", Alternatives: []string{"aaa new-model"}},
		{Name: "RADIUS server", Alternatives: []string{"radius server ", "radius-server host"}},
		{Name: "802.1X", Alternatives: []string{"dot1x system-auth-control"}},
	},
	vendors.SyntaxAOSCX: {
		{Name: "RADIUS server", Alternatives: []string{"radius-server host"}},
		{Name: "802.1X", Alternatives: []string{"aaa authentication port-access dot1x"}},
	},
	vendors.SyntaxJunos: {
		{Name: "RADIUS server", Alternatives: []string{"access radius-server", "set access radius-server"}},
		{Name: "802.1X", Alternatives: []string{"protocols dot1x"}},
	},
	vendors.SyntaxFortiOS: {
		{Name: "RADIUS server", Alternatives: []string{"config user radius"}},
	},
}

// RequiredCommands returns the required stanzas for a syntax. Generic syntax
// has none.
func RequiredCommands(syntax vendors.Syntax) []RequiredCommand {
	return requiredBySyntax[syntax]
}

// CheckRequiredCommands reports each required stanza missing from content.
func CheckRequiredCommands(content string, required []RequiredCommand) []types.Violation {
	lower := strings.ToLower(content)

	var violations []types.Violation
	for _, req := range required {
		found := false
		for _, alt := range req.Alternatives {
			if strings.Contains(lower, strings.ToLower(alt)) {
				found = true
				break
			}
		}
		if !found {
			violations = append(violations, types.Violation{
				Type:     "missing_command",
				Severity: types.SeverityWarning,
				Details:  fmt.Sprintf("No %s configuration found (expected one of: %s)", req.Name, strings.Join(req.Alternatives, ", ")),
			})
		}
	}
	return violations
}
