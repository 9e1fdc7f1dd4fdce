package validation

import (
	"os"

	"github.com/jonathan/nac-planner/internal/types"
	"github.com/jonathan/nac-planner/internal/vendors"
)

// Options tunes Lint. The zero value uses the defaults.
type Options struct {
	MaxLineLength int                // 0 uses DefaultMaxLineLength, negative disables
	Forbidden     []ForbiddenCommand // nil uses DefaultForbiddenCommands
}

// Lint checks a device configuration written in syntax for forbidden
// commands, missing NAC stanzas and overlong lines.
func Lint(content string, syntax vendors.Syntax, opts *Options) *types.Violations {
	if opts == nil {
		opts = &Options{}
	}
	forbidden := opts.Forbidden
	if forbidden == nil {
		forbidden = DefaultForbiddenCommands
	}
	maxLen := opts.MaxLineLength
	if maxLen == 0 {
		maxLen = DefaultMaxLineLength
	}

	all := []types.Violation{}
	all = append(all, CheckForbiddenCommands(content, syntax.CommentPrefix(), forbidden)...)
	all = append(all, CheckRequiredCommands(content, RequiredCommands(syntax))...)
	all = append(all, CheckLineLengths(content, maxLen)...)

	return &types.Violations{Violations: all}
}

// LintFile reads path and lints its contents.
func LintFile(path string, syntax vendors.Syntax, opts *Options) (*types.Violations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	return Lint(string(data), syntax, opts), nil
}
