package errors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrAccountExists      = errors.New("an account with that phone number already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTokenNotFound      = errors.New("token not found")
	ErrCheckNotFound      = errors.New("check not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("missing or invalid token")
	ErrTokenExpired       = errors.New("token has already expired")
	ErrQuotaExceeded      = errors.New("maximum number of checks reached")
	ErrInconsistent       = errors.New("check is not referenced by its owner account")
)

// Validationf wraps ErrValidation with a field-level message so handlers can
// map the whole family to a single status code via errors.Is.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// CascadeError reports the outcome of a cascade delete in which some of the
// dependent deletions failed. All attempts are made before it is returned.
type CascadeError struct {
	Deleted []string
	Failed  []string
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete incomplete: %d deleted, %d failed", len(e.Deleted), len(e.Failed))
}
