package domain

import (
	"errors"
	"fmt"
)

// Authentication and authorization failures.
var (
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient role")
	ErrGateMisconfigured  = errors.New("role check ran without an authenticated principal")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Store-level outcomes translated by the repositories.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrUserHasDependents = errors.New("user has dependent records")
	ErrBookOnLoan        = errors.New("book already on loan")
	ErrLoanClosed        = errors.New("loan already returned")
	ErrAlreadyReviewed   = errors.New("book already reviewed")
	ErrIncorrectPassword = errors.New("current password is incorrect")
	ErrUnsupportedUpload = errors.New("unsupported upload type")
)

// ValidationError reports missing or malformed client input. The message is
// safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
