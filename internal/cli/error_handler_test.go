package cli

import (
	"errors"
	"testing"

	apperrors "todo-list/internal/errors"
	"todo-list/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	fieldErr := validation.NewValidationError()
	fieldErr.Required("task_text")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to add task: invalid input",
		},
		{
			name:      "Wrapped field errors",
			operation: "add task",
			err:       apperrors.NewValidationError("invalid task text", fieldErr),
			expected:  "failed to add task: " + fieldErr.GetUserFriendlyMessage(),
		},
		{
			name:      "Not found error",
			operation: "find task",
			err:       apperrors.NewNotFoundError("task", "123"),
			expected:  "failed to find task: task not found: 123",
		},
		{
			name:      "Database error",
			operation: "add task",
			err:       apperrors.NewDatabaseError("put", errors.New("disk full")),
			expected:  "failed to add task: A storage error occurred. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Upstream error",
			err:      apperrors.NewUpstreamError("task breakdown endpoint", errors.New("refused")),
			expected: "The task breakdown service is unavailable. Please try again later.",
		},
		{
			name:     "Invalid input error",
			err:      apperrors.NewInvalidInputError("target", "x", "unknown drop target"),
			expected: "invalid input for target: unknown drop target",
		},
		{
			name:     "Regular error",
			err:      errors.New("plain"),
			expected: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.HandleSimple(tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.HandleSimple() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	fieldErr := validation.NewValidationError()
	fieldErr.Required("project_name")

	if !eh.IsValidationError(fieldErr) {
		t.Error("expected field errors to be validation errors")
	}
	if !eh.IsValidationError(apperrors.NewValidationError("x", nil)) {
		t.Error("expected AppError validation to be a validation error")
	}
	if !eh.IsNotFoundError(apperrors.NewNotFoundError("task", "1")) {
		t.Error("expected not found error")
	}
	if eh.IsNotFoundError(errors.New("plain")) {
		t.Error("plain errors are not not-found errors")
	}
	if got := eh.GetErrorCode(apperrors.NewNotFoundError("task", "1")); got != "NOT_FOUND" {
		t.Errorf("GetErrorCode() = %q, want NOT_FOUND", got)
	}
}
