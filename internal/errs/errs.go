// Package errs holds the error taxonomy shared by services, repositories and
// the HTTP boundary. Callers wrap these with fmt.Errorf("...: %w") and test
// with errors.Is.
package errs

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnknownSubject    = errors.New("unknown token subject")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
)

// Validation returns an ErrValidation carrying a human readable reason.
func Validation(reason string) error {
	return &validationError{reason: reason}
}

type validationError struct{ reason string }

func (e *validationError) Error() string { return e.reason }

func (e *validationError) Unwrap() error { return ErrValidation }

// Reason is the message shown to the caller.
func (e *validationError) Reason() string { return e.reason }

// IsAuth reports whether err means the caller could not be authenticated.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUnknownSubject)
}
