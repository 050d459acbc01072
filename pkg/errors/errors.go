// Package errors provides structured error handling for the application.
// Every failure crossing the handler boundary is one of a small set of
// tagged variants with a single exhaustive mapping to HTTP status codes.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode tags an AppError with its transport-level meaning.
type ErrorCode string

const (
	// Client errors (4xx)
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"

	// Server errors (5xx)
	CodeInternal ErrorCode = "INTERNAL_ERROR"
	CodeDatabase ErrorCode = "DATABASE_ERROR"
	CodeUpstream ErrorCode = "UPSTREAM_ERROR"
)

// AppError represents an application error with structured information.
// Cause carries the underlying failure for server-side logging; it is
// never serialized to API responses.
type AppError struct {
	Code    ErrorCode        `json:"code"`
	Message string           `json:"message"`
	Fields  ValidationErrors `json:"fields,omitempty"`
	Cause   error            `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status code for this error.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeValidationFailed, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches the underlying cause to the error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidation creates a validation error carrying the full list of
// field-level violations, never just the first.
func NewValidation(fields ValidationErrors) *AppError {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewBadRequest creates a malformed-request error (unparsable body,
// bad identifier, oversized upload).
func NewBadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

// NewNotFound creates a not-found error for the named resource.
func NewNotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewUnauthorized creates an unauthorized error.
func NewUnauthorized(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return New(CodeUnauthorized, message)
}

// NewForbidden creates a forbidden error.
func NewForbidden(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return New(CodeForbidden, message)
}

// NewDatabase creates a database error. The caller-facing message stays
// opaque; the failed operation and cause are kept for logging.
func NewDatabase(operation string, cause error) *AppError {
	return New(CodeDatabase, "A storage error occurred").
		WithCause(fmt.Errorf("failed to %s: %w", operation, cause))
}

// NewUpstream creates an external-service error. The remote detail is
// logged server-side only.
func NewUpstream(service string, cause error) *AppError {
	return New(CodeUpstream, fmt.Sprintf("%s request failed", service)).
		WithCause(cause)
}

// Wrap converts err into an AppError, passing existing AppErrors through
// unchanged and tagging everything else as internal.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(CodeInternal, message).WithCause(err)
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ValidationError represents a single field violation.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple field violations.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return v[0].Message
}
