package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and controllers.
var (
	ErrNotFound       = errors.New("not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicateRSVP  = errors.New("rsvp already exists for this user and event")
	ErrInvalidInput   = errors.New("invalid input")
)

// DatabaseError is the coarse error kind reported by storage reads consumed by
// the reminder scheduler. Callers branch on the kind with errors.As while logs
// keep the underlying driver failure via Unwrap.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError wraps err as a DatabaseError for operation op.
func NewDatabaseError(op string, err error) error {
	return &DatabaseError{Op: op, Err: err}
}
