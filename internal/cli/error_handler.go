package cli

import (
	stderrors "errors"
	"fmt"

	"todo-list/internal/errors"
	"todo-list/internal/validation"
)

// ErrorHandler turns errors from the business API into terminal messages.
type ErrorHandler struct{}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// describe returns the text shown to the user and whether err was one of
// ours. Field level detail wins over the AppError wrapping it.
func describe(err error) (string, bool) {
	var fields *validation.ValidationError
	if stderrors.As(err, &fields) {
		return fields.GetUserFriendlyMessage(), true
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err), true
	}
	return "", false
}

// Handle prefixes the message with the operation that failed.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if msg, ok := describe(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, msg)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func (eh *ErrorHandler) HandleSimple(err error) error {
	if msg, ok := describe(err); ok {
		return stderrors.New(msg)
	}
	return err
}

func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeValidation)
}

func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
