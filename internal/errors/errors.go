package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
)

// ErrorCategory defines the type of error for proper handling.
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryNetwork       ErrorCategory = "network"
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryExternalAPI   ErrorCategory = "external_api"
	CategoryInternal      ErrorCategory = "internal"
	CategoryConfiguration ErrorCategory = "configuration"
)

// AppError wraps an errbuilder error with HTTP and category context.
type AppError struct {
	*errbuilder.ErrBuilder
	Category   ErrorCategory `json:"category"`
	HTTPStatus int           `json:"http_status"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(e.Category)), e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from an errbuilder with context.
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory, httpStatus int) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
	}
}

// NewValidationError marks bad caller input.
func NewValidationError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return NewAppError(builder, CategoryValidation, http.StatusBadRequest)
}

// NewExternalAPIError marks a failed collaborator call (LLM, news
// source, SMTP). The collaborator name travels in the details map.
func NewExternalAPIError(apiName string, cause error) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("api_name", errors.New(apiName))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(fmt.Sprintf("%s collaborator error", apiName)).
		WithDetails(errbuilder.NewErrDetails(errorMap))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return NewAppError(builder, CategoryExternalAPI, http.StatusBadGateway)
}

// NewMalformedOutputError marks collaborator output that failed the
// structured contract. Callers drop the affected item rather than the
// batch.
func NewMalformedOutputError(apiName, detail string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("api_name", errors.New(apiName))
	errorMap.Set("detail", errors.New(detail))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s returned malformed output", apiName)).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryExternalAPI, http.StatusBadGateway)
}

// NewTimeoutError marks an exceeded deadline.
func NewTimeoutError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeDeadlineExceeded).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return NewAppError(builder, CategoryTimeout, http.StatusGatewayTimeout)
}

// NewInternalError marks an unexpected server-side failure.
func NewInternalError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return NewAppError(builder, CategoryInternal, http.StatusInternalServerError)
}

// NewConfigurationError marks missing or invalid configuration.
func NewConfigurationError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return NewAppError(builder, CategoryConfiguration, http.StatusInternalServerError)
}

// ToAppError converts any error to an AppError.
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError("Request deadline exceeded", err)
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") {
		return NewAppError(
			errbuilder.New().WithCode(errbuilder.CodeUnavailable).WithMsg("Network connection failed").WithCause(err),
			CategoryNetwork, http.StatusBadGateway,
		)
	}

	return NewInternalError("An unexpected error occurred", err)
}

// IsRetryableError reports whether a retry might help.
func IsRetryableError(err error) bool {
	appErr := ToAppError(err)
	switch appErr.Category {
	case CategoryNetwork, CategoryTimeout, CategoryExternalAPI:
		// Malformed output will stay malformed; do not retry it.
		return appErr.ErrBuilder.ErrCode() != errbuilder.CodeInvalidArgument
	default:
		return false
	}
}

// ErrorHandler is a gin middleware providing centralized error
// responses for handlers that attach errors to the context.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := ToAppError(c.Errors.Last().Err)
		LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{
			"error":    appErr.ErrBuilder.Msg,
			"category": appErr.Category,
		})
	}
}

// RecoveryHandler provides panic recovery with structured responses.
func RecoveryHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		appErr := NewInternalError(fmt.Sprintf("panic recovered: %v", recovered), nil)
		LogError(c, appErr)
		c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
			"error":    appErr.ErrBuilder.Msg,
			"category": appErr.Category,
		})
	})
}

// LogError logs an error with request context at a level matching its
// category.
func LogError(c *gin.Context, err *AppError) {
	entry := slog.With(
		"error_category", err.Category,
		"error_code", err.ErrBuilder.ErrCode(),
		"http_status", err.HTTPStatus,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"ip", c.ClientIP(),
	)

	switch err.Category {
	case CategoryValidation:
		entry.Warn(err.ErrBuilder.Msg)
	case CategoryNetwork, CategoryTimeout, CategoryExternalAPI:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			entry.Warn(err.ErrBuilder.Msg, "cause", cause)
		} else {
			entry.Warn(err.ErrBuilder.Msg)
		}
	default:
		entry.Error(err.ErrBuilder.Msg)
	}
}
