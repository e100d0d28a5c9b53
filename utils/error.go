package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable machine-readable error codes surfaced to API callers.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflictSchedule  = "CONFLICT_SCHEDULE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeTenantNotFound    = "TENANT_NOT_FOUND"
	CodePaymentError      = "PAYMENT_ERROR"
	CodeProviderQuery     = "MP_API_ERROR"
	CodePaymentNotFound   = "PAYMENT_NOT_FOUND"
	CodeMissingPaymentID  = "MISSING_PAYMENT_ID"
	CodeWebhookError      = "WEBHOOK_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// ServiceError is a coded error returned by the service layer. Handlers map
// the code to an HTTP status; the code and message are stable API surface.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func NewValidationError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// AsServiceError unwraps err into a *ServiceError if one is in its chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// StatusForCode maps a service error code to its HTTP status.
func StatusForCode(code string) int {
	switch code {
	case CodeValidation, CodeConflictSchedule, CodeInvalidTransition, CodeMissingPaymentID:
		return http.StatusBadRequest
	case CodeNotFound, CodeTenantNotFound, CodePaymentNotFound:
		return http.StatusNotFound
	case CodePaymentError, CodeProviderQuery, CodeWebhookError, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every error reply.
type ErrorResponse struct {
	Error errorBody `json:"error"`
}

// ErrorHandler is a middleware that catches panics and returns structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error: errorBody{Code: CodeInternal, Message: "An unexpected error occurred. Please try again later."},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, code, message string) {
	GetLogger().Warn(message, zap.String("code", code))
	c.JSON(status, ErrorResponse{Error: errorBody{Code: code, Message: message}})
}

// JSONServiceError renders err: coded service errors keep their code and
// mapped status, anything else becomes an opaque 500.
func JSONServiceError(c *gin.Context, err error) {
	if se, ok := AsServiceError(err); ok {
		JSONError(c, StatusForCode(se.Code), se.Code, se.Message)
		return
	}
	JSONError(c, http.StatusInternalServerError, CodeInternal, err.Error())
}
