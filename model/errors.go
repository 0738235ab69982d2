package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned when an operation requires a signed-in user
	ErrNoSession = errors.New("no active session")

	// ErrNotEnrolled is returned when a ledger mutation targets a course
	// the user has not enrolled in
	ErrNotEnrolled = errors.New("not enrolled in course")

	// ErrUnknownCourse is returned when a course id has no catalog entry
	ErrUnknownCourse = errors.New("unknown course")

	// ErrEmptyAnswer is returned when an empty answer is submitted for grading
	ErrEmptyAnswer = errors.New("answer must not be empty")

	// ErrRequestInFlight is returned when a practice session already has a
	// collaborator request pending. Requests are rejected, never queued.
	ErrRequestInFlight = errors.New("another request is already in flight")

	// ErrInvalidState is returned when a practice operation is not valid in
	// the session's current state
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrUnknownPost is returned when a forum post id has no entry
	ErrUnknownPost = errors.New("unknown forum post")

	// ErrSessionClosed is returned when a collaborator response arrives
	// after the practice session has been closed or restarted. The response
	// is discarded instead of being applied to stale state.
	ErrSessionClosed = errors.New("practice session closed")
)

// CollaboratorError wraps a failed or unparseable collaborator round trip.
// No partial state is committed; the operation remains retryable.
type CollaboratorError struct {
	Op  string // translate, generate, evaluate, tutor
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsCollaboratorError reports whether err originated at the collaborator boundary
func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
