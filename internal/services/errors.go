package services

import (
	"errors"

	"github.com/SAP-F-2025/study-portal/internal/validator"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrUnauthorized       = errors.New("not signed in")
	ErrForbidden          = errors.New("insufficient role")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSelection        = errors.New("no option selected")
	ErrNoQuestions        = errors.New("no questions available")
	ErrNotAnswerable      = errors.New("no question is being answered")
	ErrEmailTaken         = errors.New("email already in use")
	ErrProtectedUser      = errors.New("administrator accounts cannot be deleted")
)

// IsValidationError reports whether err carries field validation failures.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) || errors.Is(err, ErrValidationFailed)
}
