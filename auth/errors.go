package auth

import "errors"

var (
	ErrValidation           = errors.New("invalid credentials format")
	ErrDuplicateIdentifier  = errors.New("identifier already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAlreadyAuthenticated = errors.New("session already established")
)

// ValidationError reports which field failed the length policy. It unwraps
// to ErrValidation.
type ValidationError struct {
	Field   string // "identifier" or "secret"
	Message string // user-facing text
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
