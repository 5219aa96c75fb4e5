package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrVersionConflict    = errors.New("version conflict")
)

// PreconditionFailedError reports an operation that is illegal in the
// current state of an aggregate (for example, discounting a closed check).
type PreconditionFailedError struct {
	Operation string
	Reason    string
}

func NewPreconditionFailedError(operation, reason string) *PreconditionFailedError {
	return &PreconditionFailedError{
		Operation: operation,
		Reason:    reason,
	}
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPreconditionFailed, e.Operation, e.Reason)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// NotAuthorizedError is returned when a gated mutation lacks a valid manager approval.
type NotAuthorizedError struct {
	Action string
	Cause  error
}

func NewNotAuthorizedError(action string) *NotAuthorizedError {
	return &NotAuthorizedError{Action: action}
}

func NewNotAuthorizedErrorWithCause(action string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{
		Action: action,
		Cause:  cause,
	}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrNotAuthorized, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrNotAuthorized, e.Action)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// VersionConflictError is returned when a write is based on a stale
// optimistic-concurrency token.
type VersionConflictError struct {
	Entity   string
	ID       any
	Expected int
	Actual   int
}

func NewVersionConflictError(entity string, id any, expected, actual int) *VersionConflictError {
	return &VersionConflictError{
		Entity:   entity,
		ID:       id,
		Expected: expected,
		Actual:   actual,
	}
}

func (e *VersionConflictError) Error() string {
	if e.Actual < 0 {
		return fmt.Sprintf("%s: %s %v was modified concurrently (expected version %d)",
			ErrVersionConflict, e.Entity, e.ID, e.Expected)
	}
	return fmt.Sprintf("%s: %s %v expected version %d, actual version %d",
		ErrVersionConflict, e.Entity, e.ID, e.Expected, e.Actual)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
