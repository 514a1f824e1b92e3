package web

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-list/internal/errors"
	"todo-list/internal/validation"
)

// statusFor maps application error types to HTTP status codes
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrorTypeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage prefers field level detail for validation failures
func userMessage(err error) string {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage()
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	return "An unexpected error occurred. Please try again."
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if errors.ShouldLogError(err) {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   userMessage(err),
		"code":    errors.GetErrorCode(err),
	})
}

func (s *Server) respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   message,
		"code":    "BAD_REQUEST",
	})
}
