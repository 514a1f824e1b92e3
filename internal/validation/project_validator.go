package validation

import (
	"todo-list/internal/config"
)

// ProjectValidator checks project names and project ids.
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a project validator with the default limits
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

// NewProjectValidatorWithConfig uses the configured name length limit
func NewProjectValidatorWithConfig(cfg *config.Config) *ProjectValidator {
	return &ProjectValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateProjectName applies to both creation and rename.
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	_, err := pv.GetValidProjectName(name)
	return err
}

// GetValidProjectName returns the trimmed name, or every rule it breaks
func (pv *ProjectValidator) GetValidProjectName(name string) (string, error) {
	ve := NewValidationError()
	clean := pv.validator.checkLine(ve, "project_name", name, pv.validator.limits.ProjectName)
	if err := ve.orNil(); err != nil {
		return "", err
	}
	return clean, nil
}

// ValidateProjectID checks that id is a full project identifier
func (pv *ProjectValidator) ValidateProjectID(id string) error {
	ve := NewValidationError()
	pv.validator.checkID(ve, "project_id", id)
	return ve.orNil()
}
