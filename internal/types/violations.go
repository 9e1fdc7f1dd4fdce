package types

// Violation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation is a single lint finding in a device configuration.
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Details    string `json:"details"`
	LineNumber *int   `json:"line_number,omitempty"`
	Command    string `json:"command,omitempty"` // Offending line, trimmed
}

// Violations is a collection of lint findings.
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity.
func (v *Violations) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Messages returns the details of every violation in order.
func (v *Violations) Messages() []string {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(v.Violations))
	for _, violation := range v.Violations {
		out = append(out, violation.Details)
	}
	return out
}
