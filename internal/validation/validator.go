package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"todo-list/internal/config"

	"github.com/google/uuid"
)

// Limits are the maximum lengths, in characters, of text on the board.
type Limits struct {
	TaskText    int
	ProjectName int
}

// DefaultLimits returns the limits used when no configuration is given
func DefaultLimits() Limits {
	return Limits{TaskText: 500, ProjectName: 100}
}

// Validator holds the checks shared by the task and project validators.
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with the default limits
func NewValidator() *Validator {
	return &Validator{limits: DefaultLimits()}
}

// NewValidatorWithConfig creates a validator with the configured limits.
// A nil config falls back to the defaults.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	return &Validator{limits: Limits{
		TaskText:    cfg.Validation.TaskTextMaxLength,
		ProjectName: cfg.Validation.ProjectNameMaxLength,
	}}
}

// Limits returns the limits in use
func (v *Validator) Limits() Limits {
	return v.limits
}

// checkLine trims s and records every rule it breaks for a single line
// of board text. It returns the trimmed value.
func (v *Validator) checkLine(ve *ValidationError, field, s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		ve.Required(field)
		return s
	}
	if utf8.RuneCountInString(s) > max {
		ve.TooLong(field, s, max)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		ve.MultiLine(field, s)
	}
	return s
}

// cleanLine makes s fit on one row: control characters become spaces and
// the result is cut to max characters.
func (v *Validator) cleanLine(s string, max int) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		s = strings.TrimSpace(string(r[:max]))
	}
	return s
}

// checkID accepts only the full identifiers the board assigns. Prefix
// lookup happens before validation, in the API layer.
func (v *Validator) checkID(ve *ValidationError, field, id string) {
	if strings.TrimSpace(id) == "" {
		ve.Required(field)
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		ve.Malformed(field, id, "must be a full identifier")
	}
}
