// Package errors provides structured error handling with HTTP status code
// mapping and the JSON envelope shared by every error response.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error for metrics and response formatting.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates resource not found (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeRateLimited indicates the client exceeded a request limit (HTTP 429)
	TypeRateLimited ErrorType = "rate_limited"
	// TypeTimeout indicates an upstream call timed out (HTTP 408)
	TypeTimeout ErrorType = "timeout"
	// TypeUnavailable indicates an upstream dependency is down (HTTP 503)
	TypeUnavailable ErrorType = "unavailable"
	// TypeBadGateway indicates an upstream transport or provider failure (HTTP 502)
	TypeBadGateway ErrorType = "bad_gateway"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type              ErrorType
	Message           string
	Cause             error
	RetryAfterSeconds int
	Context           map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeRateLimited:
		return http.StatusTooManyRequests
	case TypeTimeout:
		return http.StatusRequestTimeout
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	case TypeBadGateway:
		return http.StatusBadGateway
	case TypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError creates a new validation error (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{
		Type:    TypeValidation,
		Message: message,
		Context: make(map[string]any),
	}
}

// NotFoundError creates a new not-found error (HTTP 404).
func NotFoundError(message string) *Error {
	return &Error{
		Type:    TypeNotFound,
		Message: message,
		Context: make(map[string]any),
	}
}

// RateLimitedError creates a new rate-limit error (HTTP 429) carrying the
// retry hint in seconds.
func RateLimitedError(message string, retryAfterSeconds int) *Error {
	return &Error{
		Type:              TypeRateLimited,
		Message:           message,
		RetryAfterSeconds: retryAfterSeconds,
		Context:           make(map[string]any),
	}
}

// TimeoutError creates a new upstream-timeout error (HTTP 408).
func TimeoutError(message string, cause error) *Error {
	return &Error{
		Type:    TypeTimeout,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// UnavailableError creates a new service-unavailable error (HTTP 503).
func UnavailableError(message string, cause error) *Error {
	return &Error{
		Type:    TypeUnavailable,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// BadGatewayError creates a new upstream-failure error (HTTP 502).
func BadGatewayError(message string, cause error) *Error {
	return &Error{
		Type:    TypeBadGateway,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// InternalError creates a new internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return &Error{
		Type:    TypeInternal,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithField adds a context field to the error (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse represents the JSON structure sent to clients. Every error
// response carries the success flag, the error kind, and a human-readable
// message; internal diagnostics never leak here.
type ErrorResponse struct {
	Success           bool           `json:"success"`
	Error             ErrorType      `json:"error"`
	Message           string         `json:"message"`
	RetryAfterSeconds int            `json:"retryAfterSeconds,omitempty"`
	Context           map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for JSON serialization.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Success:           false,
		Error:             e.Type,
		Message:           e.Message,
		RetryAfterSeconds: e.RetryAfterSeconds,
		Context:           e.Context,
	}
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}
