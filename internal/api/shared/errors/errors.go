package errors

import (
	"encoding/json"
	"strings"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"

	// Conflict errors (409)
	ErrCodeDuplicate       ErrorCode = "duplicate"
	ErrCodeReferenceInUse  ErrorCode = "reference_in_use"
	ErrCodeOverlapConflict ErrorCode = "overlap_conflict"
	ErrCodeVersionConflict ErrorCode = "current_version_conflict"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
)

// APIError represents a structured API error carrying an error code and details.
// Retryable marks the two conflict kinds callers are expected to retry with
// backoff; all other errors are terminal and surfaced unchanged.
type APIError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDuplicateError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDuplicate,
		Message: "Duplicate record",
		Details: strings.Join(details, ", "),
	}
}

func NewReferenceInUseError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeReferenceInUse,
		Message: "Record is referenced by dependent records",
		Details: strings.Join(details, ", "),
	}
}

func NewOverlapConflictError(details ...string) *APIError {
	return &APIError{
		Code:      ErrCodeOverlapConflict,
		Message:   "Interval overlaps an existing record",
		Details:   strings.Join(details, ", "),
		Retryable: true,
	}
}

func NewVersionConflictError(details ...string) *APIError {
	return &APIError{
		Code:      ErrCodeVersionConflict,
		Message:   "Concurrent amendment won the race",
		Details:   strings.Join(details, ", "),
		Retryable: true,
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}
