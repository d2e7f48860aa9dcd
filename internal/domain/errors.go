package domain

import (
	"errors"
	"fmt"
)

// ErrOutcomeNotFound is returned when an outcome id does not exist upstream,
// including a second delete of an already-deleted row.
var ErrOutcomeNotFound = errors.New("negotiation outcome not found")

// ErrWorkspaceNotFound is returned when no workspace is open for the user.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrWorkspaceClosed is returned for operations on a closed workspace.
var ErrWorkspaceClosed = errors.New("workspace closed")

// ValidationError carries a user-facing message for input rejected before
// any network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a non-2xx response from the career backend.
type UpstreamError struct {
	API    string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API returned status %d", e.API, e.Status)
}
