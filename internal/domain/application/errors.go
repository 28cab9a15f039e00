package application

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotApproved       = errors.New("application is not approved")
	ErrValidation        = errors.New("validation failed")
	ErrPersistence       = errors.New("persistence failure")
)

// ValidationError reports malformed input. Nothing is written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError wraps a record store failure; the transition did not commit.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsDomain reports whether err is one of the errors a caller is expected to handle
// as business outcome rather than infrastructure failure.
func IsDomain(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidTransition, ErrForbidden, ErrNotApproved, ErrValidation} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
