package validation

import (
	"todo-list/internal/config"
)

// TaskValidator checks task text and task ids.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator with the default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig uses the configured text length limit.
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTaskText checks that text is usable as a task
func (tv *TaskValidator) ValidateTaskText(text string) error {
	_, err := tv.GetValidTaskText(text)
	return err
}

// GetValidTaskText returns the trimmed text, or every rule it breaks.
func (tv *TaskValidator) GetValidTaskText(text string) (string, error) {
	ve := NewValidationError()
	clean := tv.validator.checkLine(ve, "task_text", text, tv.validator.limits.TaskText)
	if err := ve.orNil(); err != nil {
		return "", err
	}
	return clean, nil
}

// ValidateTaskID checks that id is a full task identifier
func (tv *TaskValidator) ValidateTaskID(id string) error {
	ve := NewValidationError()
	tv.validator.checkID(ve, "task_id", id)
	return ve.orNil()
}

// Clean coerces text from outside the board, such as a breakdown step,
// into valid task text. It returns "" only when nothing printable is left.
func (tv *TaskValidator) Clean(text string) string {
	return tv.validator.cleanLine(text, tv.validator.limits.TaskText)
}
