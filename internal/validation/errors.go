package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Rule names the check a field failed.
type Rule string

const (
	RuleRequired   Rule = "required"
	RuleMaxLength  Rule = "max_length"
	RuleFormat     Rule = "format"
	RuleSingleLine Rule = "single_line"
)

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
	Value   any
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects every FieldError found in one request so the
// page and the CLI can report all of them at once.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation error"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}
	parts := make([]string, 0, len(ve.Errors))
	for i := range ve.Errors {
		parts = append(parts, ve.Errors[i].Error())
	}
	return "multiple validation errors: " + strings.Join(parts, "; ")
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Merge takes over the field errors of err when it is a ValidationError.
// Other errors are ignored.
func (ve *ValidationError) Merge(err error) {
	var other *ValidationError
	if stderrors.As(err, &other) {
		ve.Errors = append(ve.Errors, other.Errors...)
	}
}

func (ve *ValidationError) Add(field string, rule Rule, message string, value any) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Rule: rule, Message: message, Value: value})
}

func (ve *ValidationError) Required(field string) {
	ve.Add(field, RuleRequired, field+" is required", nil)
}

func (ve *ValidationError) TooLong(field string, value any, max int) {
	ve.Add(field, RuleMaxLength, fmt.Sprintf("%s must be at most %d characters long", field, max), value)
}

func (ve *ValidationError) Malformed(field string, value any, reason string) {
	ve.Add(field, RuleFormat, fmt.Sprintf("%s has invalid value: %s", field, reason), value)
}

// MultiLine reports text that would break the one-row-per-item layout.
func (ve *ValidationError) MultiLine(field string, value any) {
	ve.Add(field, RuleSingleLine, field+" must not contain line breaks or control characters", value)
}

// For returns the errors recorded against one field.
func (ve *ValidationError) For(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// GetUserFriendlyMessage renders the collected messages, one bullet per
// failed rule when there is more than one.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

func (ve *ValidationError) orNil() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}
