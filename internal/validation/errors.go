// Package validation lints generated device configurations and validates
// request structs.
package validation

import "fmt"

// Error reports a request struct that failed its validate tags. Message
// already names the field.
type Error struct {
	Field   string // Struct field that failed, if any
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return "validation error: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FileReadError is returned by LintFile when the configuration cannot be read.
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
