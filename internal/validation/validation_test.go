package validation

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("alice"); err != nil {
		t.Errorf("valid username rejected: %v", err)
	}
	if err := ValidateUsername("ab"); err == nil {
		t.Errorf("two-character username accepted")
	}
	if err := ValidateUsername("  ab  "); err == nil {
		t.Errorf("whitespace-padded short username accepted")
	}
	if err := ValidateUsername(strings.Repeat("a", 51)); err == nil {
		t.Errorf("overlong username accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret9"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Errorf("five-character password accepted")
	}
	if err := ValidatePassword(strings.Repeat("a", 73)); err == nil {
		t.Errorf("password beyond bcrypt limit accepted")
	}
}
