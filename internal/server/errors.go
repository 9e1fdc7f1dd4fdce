// Package server provides the HTTP REST API for the NAC deployment planner.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/nac-planner/internal/configgen"
	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/projects"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/schemas"
	"github.com/jonathan/nac-planner/internal/validation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the addressed resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates a feature that needs configuration the server was
// started without, such as an LLM API key.
type ErrUnavailable struct {
	Feature string
	Reason  string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Feature, e.Reason)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr  *ErrValidation
		notFoundErr    *ErrNotFound
		unavailableErr *ErrUnavailable
		structErr      *validation.Error
		schemaErr      *schemas.ValidationError
		loadErr        *library.LoadError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &structErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.Is(err, projects.ErrInvalid), errors.Is(err, configgen.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.Is(err, projects.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, recommend.ErrUnknownRecommendation):
		return http.StatusNotFound
	case errors.As(err, &unavailableErr), errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
