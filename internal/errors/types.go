package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies a failure so callers can pick an exit path
// (status code, user message, log or not) without string matching.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeDatabase     ErrorType = "database"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeTimeout      ErrorType = "timeout"
	ErrorTypeUpstream     ErrorType = "upstream"
)

type kind struct {
	code string
	// userFault marks failures caused by what the user typed or clicked.
	// Their message is shown as is and they are not logged.
	userFault   bool
	userMessage string
}

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {code: "VALIDATION_FAILED", userFault: true},
	ErrorTypeNotFound:     {code: "NOT_FOUND", userFault: true},
	ErrorTypeInvalidInput: {code: "INVALID_INPUT", userFault: true},
	ErrorTypeDatabase:     {code: "DATABASE_ERROR", userMessage: "A storage error occurred. Please try again."},
	ErrorTypeTimeout:      {code: "TIMEOUT", userMessage: "The operation timed out. Please try again."},
	ErrorTypeUpstream:     {code: "UPSTREAM_ERROR", userMessage: "The task breakdown service is unavailable. Please try again later."},
}

const unexpectedMessage = "An unexpected error occurred. Please try again."

func (et ErrorType) String() string {
	if _, ok := kinds[et]; !ok {
		return "unknown"
	}
	return string(et)
}

// Code is the stable machine readable code for the type.
func (et ErrorType) Code() string {
	if k, ok := kinds[et]; ok {
		return k.code
	}
	return "UNKNOWN_ERROR"
}

// AppError is the error every layer of the board returns. Details hold
// the lookup keys (resource, id, key, operation) the failure was about.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Details map[string]any
}

func newAppError(et ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    et,
		Message: message,
		Code:    et.Code(),
		Cause:   cause,
		Details: map[string]any{},
	}
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so sentinel
// values like &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"} work
// with errors.Is.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && other.Type == e.Type && other.Code == e.Code
}

func (e *AppError) IsType(et ErrorType) bool {
	return e.Type == et
}

// With records a detail and returns the receiver for chaining.
func (e *AppError) With(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// Detail returns a recorded detail.
func (e *AppError) Detail(key string) (any, bool) {
	v, ok := e.Details[key]
	return v, ok
}

// DetailKeys lists the recorded detail keys in sorted order.
func (e *AppError) DetailKeys() []string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
