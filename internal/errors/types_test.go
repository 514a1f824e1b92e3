package errors

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestErrorType_StringAndCode(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		name      string
		code      string
	}{
		{ErrorTypeValidation, "validation", "VALIDATION_FAILED"},
		{ErrorTypeNotFound, "not_found", "NOT_FOUND"},
		{ErrorTypeDatabase, "database", "DATABASE_ERROR"},
		{ErrorTypeInvalidInput, "invalid_input", "INVALID_INPUT"},
		{ErrorTypeTimeout, "timeout", "TIMEOUT"},
		{ErrorTypeUpstream, "upstream", "UPSTREAM_ERROR"},
		{ErrorType("sideways"), "unknown", "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			if got := tt.errorType.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.errorType.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := newAppError(ErrorTypeValidation, "task text is required", nil)
	if got := plain.Error(); got != "validation: task text is required" {
		t.Errorf("Error() = %q", got)
	}

	caused := newAppError(ErrorTypeDatabase, "save board failed", errors.New("disk I/O error"))
	if got := caused.Error(); got != "database: save board failed (caused by: disk I/O error)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAppError_ErrorsIsAndAs(t *testing.T) {
	cause := errors.New("locked")
	err := fmt.Errorf("save items: %w", NewDatabaseError("put items", cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the driver cause")
	}
	if !errors.Is(err, &AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}) {
		t.Error("errors.Is should match an AppError with the same type and code")
	}
	if errors.Is(err, &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}) {
		t.Error("errors.Is should not match a different type")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) || !appErr.IsType(ErrorTypeDatabase) {
		t.Errorf("errors.As should find the database error, got %v", appErr)
	}
}

func TestAppError_Details(t *testing.T) {
	err := &AppError{Type: ErrorTypeNotFound}

	if _, ok := err.Detail("id"); ok {
		t.Error("Detail on an error without details should report false")
	}

	if err.With("resource", "project").With("id", "b3c1") != err {
		t.Error("With should return the receiver")
	}
	if v, ok := err.Detail("id"); !ok || v != "b3c1" {
		t.Errorf("Detail(id) = %v, %v", v, ok)
	}
	if keys := err.DetailKeys(); !reflect.DeepEqual(keys, []string{"id", "resource"}) {
		t.Errorf("DetailKeys() = %v", keys)
	}
}
