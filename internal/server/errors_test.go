package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/projects"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/schemas"
	"github.com/jonathan/nac-planner/internal/validation"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "recommendation_id", Message: "is required"}
	assert.Equal(t, "validation error: recommendation_id - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "session", ID: "abc"}
	assert.Equal(t, "session not found: abc", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrUnavailable(t *testing.T) {
	err := &ErrUnavailable{Feature: "config generation", Reason: "no API key"}
	assert.Equal(t, "config generation unavailable: no API key", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "struct validation", err: &validation.Error{Field: "Name", Message: "is required"}, expected: http.StatusBadRequest},
		{name: "schema validation", err: &schemas.ValidationError{}, expected: http.StatusBadRequest},
		{name: "invalid project", err: fmt.Errorf("%w: name", projects.ErrInvalid), expected: http.StatusBadRequest},
		{name: "invalid config request", err: fmt.Errorf("%w: vendor", configgen.ErrInvalidRequest), expected: http.StatusBadRequest},
		{name: "project not found", err: projects.ErrNotFound, expected: http.StatusNotFound},
		{name: "unknown recommendation", err: fmt.Errorf("%w: rec-x", recommend.ErrUnknownRecommendation), expected: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "session", ID: "x"}), expected: http.StatusNotFound},
		{name: "library load", err: &library.LoadError{Source: "db", Message: "failed"}, expected: http.StatusServiceUnavailable},
		{name: "unknown", err: assert.AnError, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
