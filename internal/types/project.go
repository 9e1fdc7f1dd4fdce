package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Project statuses
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusDesign     = "design"
	ProjectStatusDeployment = "deployment"
	ProjectStatusComplete   = "complete"
)

// CreateProjectRequest is the payload the project wizard submits once scoping is done.
type CreateProjectRequest struct {
	Name           string      `json:"name" validate:"required,min=1,max=200"`
	Customer       string      `json:"customer,omitempty" validate:"max=200"`
	Industry       string      `json:"industry,omitempty"`
	Status         string      `json:"status,omitempty" validate:"omitempty,oneof=planning design deployment complete"`
	Intake         *IntakeData `json:"intake,omitempty"`
	PainPointIDs   []string    `json:"pain_point_ids,omitempty" validate:"dive,required"`
	UseCaseIDs     []string    `json:"use_case_ids,omitempty" validate:"dive,required"`
	RequirementIDs []string    `json:"requirement_ids,omitempty" validate:"dive,required"`
}

// Validate validates the CreateProjectRequest using the validator.
func (r *CreateProjectRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Project is a persisted NAC deployment project.
type Project struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Customer       string      `json:"customer,omitempty"`
	Industry       string      `json:"industry,omitempty"`
	Status         string      `json:"status"`
	Intake         *IntakeData `json:"intake,omitempty"`
	PainPointIDs   []string    `json:"pain_point_ids"`
	UseCaseIDs     []string    `json:"use_case_ids"`
	RequirementIDs []string    `json:"requirement_ids"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
