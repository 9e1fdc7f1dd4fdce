// Package configgen builds device configuration prompts, post-processes
// model output and runs configuration and business analysis.
package configgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/nac-planner/internal/validation"
	"github.com/jonathan/nac-planner/internal/vendors"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid config request")

// Deployment types
const (
	DeploymentWired    = "wired"
	DeploymentWireless = "wireless"
	DeploymentHybrid   = "hybrid"
)

// Request describes the device configuration to generate.
type Request struct {
	Vendor         string   `json:"vendor" validate:"required"`
	Model          string   `json:"model" validate:"required,max=100"`
	Firmware       string   `json:"firmware,omitempty" validate:"max=100"`
	DeploymentType string   `json:"deployment_type" validate:"required,oneof=wired wireless hybrid"`
	AuthMethods    []string `json:"auth_methods" validate:"required,min=1,dive,oneof=dot1x mab webauth"`
	UseCaseIDs     []string `json:"use_case_ids,omitempty" validate:"dive,required"`
	RequirementIDs []string `json:"requirement_ids,omitempty" validate:"dive,required"`
	SecurityLevel  string   `json:"security_level,omitempty" validate:"omitempty,oneof=standard high maximum"`
	ExtraContext   string   `json:"extra_context,omitempty" validate:"max=4000"`
}

// Validate checks struct tags and that the vendor is in the catalog.
func (r *Request) Validate() error {
	if err := validation.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := vendors.Resolve(r.Vendor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func (r *Request) securityLevel() string {
	if r.SecurityLevel == "" {
		return "standard"
	}
	return r.SecurityLevel
}

func (r *Request) firmware() string {
	if strings.TrimSpace(r.Firmware) == "" {
		return "latest recommended"
	}
	return r.Firmware
}
