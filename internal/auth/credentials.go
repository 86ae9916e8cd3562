package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinCredentialLen = 4
	MaxCredentialLen = 150
)

// ValidateCredentials enforces the signup length limits on both fields.
// Lengths are counted in characters, not bytes.
func ValidateCredentials(username, password string) error {
	if err := checkLength("username", username); err != nil {
		return err
	}
	return checkLength("password", password)
}

// WellFormed reports whether value can be stored as text: valid UTF-8
// without NUL bytes.
func WellFormed(value string) bool {
	return utf8.ValidString(value) && !strings.ContainsRune(value, 0)
}

func checkLength(field, value string) error {
	if !WellFormed(value) {
		return fmt.Errorf("%s contains invalid characters", field)
	}
	n := utf8.RuneCountInString(value)
	if n < MinCredentialLen || n > MaxCredentialLen {
		return fmt.Errorf("%s must be between %d and %d characters", field, MinCredentialLen, MaxCredentialLen)
	}
	return nil
}
