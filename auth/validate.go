package auth

import "unicode/utf8"

const (
	MinIdentifierLength = 4
	MinSecretLength     = 7
)

// ValidateCredentials applies the length policy for both login and
// registration. Lengths are counted in characters, not bytes.
func ValidateCredentials(identifier, secret string) error {
	if utf8.RuneCountInString(identifier) < MinIdentifierLength ||
		utf8.RuneCountInString(secret) < MinSecretLength {
		field := "identifier"
		if utf8.RuneCountInString(identifier) >= MinIdentifierLength {
			field = "secret"
		}
		return &ValidationError{
			Field:   field,
			Message: "Логин должен быть > 3 символов, пароль > 6.",
		}
	}
	return nil
}
