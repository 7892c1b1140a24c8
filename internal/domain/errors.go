package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed enums, missing required fields, or malformed intervals
	ErrValidation = errors.New("validation error")

	// ErrReferenceInUse is returned when a delete is blocked by a dependent record
	ErrReferenceInUse = errors.New("reference in use")

	// ErrOverlapConflict is returned when a rent period interval collides with an existing one.
	// Retryable: callers re-read sibling periods and retry with a corrected interval.
	ErrOverlapConflict = errors.New("overlap conflict")

	// ErrCurrentVersionConflict is returned when a concurrent amendment wins the race. Retryable.
	ErrCurrentVersionConflict = errors.New("current version conflict")

	// ErrDuplicate is returned on a unique-key collision, e.g. a repeated external
	// lease number or suite code within a property
	ErrDuplicate = errors.New("duplicate")
)

// IsRetryable reports whether the error is one of the two conflict kinds
// callers are expected to retry with backoff
func IsRetryable(err error) bool {
	return errors.Is(err, ErrOverlapConflict) || errors.Is(err, ErrCurrentVersionConflict)
}
