package validation

import (
	"errors"
	"strings"
)

// ValidateUsername enforces the signup rules: at least 3 characters, no
// surrounding whitespace, bounded length.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if len(trimmed) < 3 {
		return errors.New("username must be at least 3 characters long")
	}

	if len(trimmed) > 50 {
		return errors.New("username is too long (max 50 characters)")
	}

	return nil
}
