// Package validate holds client-side input checks that run before a
// request is sent, so obviously bad input never leaves the console.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Password checks the rules in order and reports the first violation,
// so the user always sees a single actionable message.
func Password(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain a digit")
	}
	if !hasSpecial {
		return errors.New("password must contain a special character")
	}
	return nil
}

// Identifier accepts the login identifier, which may be either an email
// address or a username.
func Identifier(identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return errors.New("email or username is required")
	}

	// Anything with an "@" must at least look like an email.
	if strings.Contains(identifier, "@") {
		at := strings.Index(identifier, "@")
		rest := identifier[at+1:]
		if at == 0 || rest == "" || !strings.Contains(rest, ".") {
			return errors.New("invalid email format")
		}
	}
	return nil
}

// OTPCode checks a one-time code: exactly six digits.
func OTPCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 6 {
		return fmt.Errorf("verification code must be 6 digits")
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("verification code must contain only digits")
		}
	}
	return nil
}
