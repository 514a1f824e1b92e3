package errors

import (
	"errors"
	"fmt"
)

// NewValidationError reports input that failed field validation. The
// cause is usually a *validation.ValidationError carrying the fields.
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, message, cause)
}

// NewNotFoundError reports a task, project or stored key that does not exist.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil).
		With("resource", resource).
		With("identifier", identifier)
}

func NewDatabaseError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeDatabase, "database operation failed: "+operation, cause).
		With("operation", operation)
}

// NewInvalidInputError reports a request that is well formed but refers
// to something unusable, such as an unknown drop target kind.
func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil).
		With("field", field).
		With("value", value).
		With("reason", reason)
}

func NewTimeoutError(operation string, timeout any) *AppError {
	return newAppError(ErrorTypeTimeout, "operation timed out: "+operation, nil).
		With("operation", operation).
		With("timeout", timeout)
}

// NewUpstreamError reports a failed call to the task breakdown endpoint.
func NewUpstreamError(service string, cause error) *AppError {
	return newAppError(ErrorTypeUpstream, fmt.Sprintf("request to %s failed", service), cause).
		With("service", service)
}

// WrapError classifies an arbitrary error under the given type.
func WrapError(err error, et ErrorType, message string) *AppError {
	return newAppError(et, message, err)
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the outermost AppError in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return nil, false
	}
	return appErr, true
}

func IsErrorType(err error, et ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(et)
}

// GetUserMessage returns text fit for the page or the terminal. User
// caused failures keep their own message; system failures get a fixed
// sentence so driver or HTTP details do not leak.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	k, known := kinds[appErr.Type]
	switch {
	case !known:
		return unexpectedMessage
	case k.userFault:
		return appErr.Message
	default:
		return k.userMessage
	}
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for failures the user caused.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	return !kinds[appErr.Type].userFault
}
