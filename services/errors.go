package services

import "errors"

// Validation errors are rejected before any mutation happens.
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrContestNotFound    = errors.New("contest not found")
	ErrUnknownStatus      = errors.New("unknown moderation status")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrNotesRequired      = errors.New("rejection requires a non-empty reason")
)

// IsValidationError reports whether err belongs to the pre-mutation
// validation taxonomy (as opposed to a persistence failure).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrContestNotFound) ||
		errors.Is(err, ErrUnknownStatus) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNotesRequired)
}
