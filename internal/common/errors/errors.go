// Package errors provides standardized error handling for the marketplace API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Boundary errors: the caller supplied a malformed request.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Generation errors: the external generation capability misbehaved.
	ErrCodeGenerationEmpty      ErrorCode = "GENERATION_EMPTY"
	ErrCodeGenerationCallFailed ErrorCode = "GENERATION_CALL_FAILED"

	// Upstream errors: the remote record store misbehaved.
	ErrCodeUpstreamFetchFailed ErrorCode = "UPSTREAM_FETCH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a boundary validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Invalid request",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationEmptyError signals that the generation capability returned no
// structured output for an operation where that is terminal.
func NewGenerationEmptyError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationEmpty,
		Message:   "generation produced no result",
		Details:   fmt.Sprintf("operation: %s", operation),
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationCallError wraps a transport-level failure of the generation call.
func NewGenerationCallError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationCallFailed,
		Message:   "generation call failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamFetchError embeds the upstream status and body text in the message,
// matching the surfacing behavior of the store fetch path.
func NewUpstreamFetchError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamFetchFailed,
		Message:   fmt.Sprintf("store fetch failed: %d - %s", status, body),
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "An internal server error occurred",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// httpStatusMapping maps internal error codes to HTTP response statuses.
// Only validation failures are the caller's fault; everything else is a 500
// with the raw message surfaced.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed:     http.StatusBadRequest,
	ErrCodeGenerationEmpty:      http.StatusInternalServerError,
	ErrCodeGenerationCallFailed: http.StatusInternalServerError,
	ErrCodeUpstreamFetchFailed:  http.StatusInternalServerError,
	ErrCodeInternal:             http.StatusInternalServerError,
}

// HTTPStatus returns the response status for an error.
func HTTPStatus(err error) int {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		if status, ok := httpStatusMapping[stdErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// CodeOf returns the error code, or INTERNAL_ERROR for untyped errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}
