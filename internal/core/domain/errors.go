package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSignupFields is returned when a signup payload is missing any of
	// the three mandatory fields.
	ErrSignupFields = errors.New("_id, username, and password are required")

	ErrUsernameTaken      = errors.New("username already in use")
	ErrUserIDExists       = errors.New("user id already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrSessionSave indicates the session record could not be persisted
	// before replying. Mapped to 500, unlike other store failures.
	ErrSessionSave = errors.New("session error")
)

// StoreError wraps an underlying persistence failure. The HTTP surface
// renders these as 400 with the message passed through.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
