package handlers

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/jharden/parley/internal/apperr"
)

// normalize trims and case-folds a username or email before comparison and
// storage; uniqueness is case-insensitive.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.InvalidArg("email is missing")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.InvalidArg("email is invalid")
	}
	return nil
}

// validatePassword requires at least 6 characters with one uppercase, one
// lowercase, one digit, and one symbol.
func validatePassword(password string) error {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if len(password) < 6 || !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return apperr.InvalidArg("password must have at least 6 characters with one uppercase, lowercase, numerical, and special character")
	}
	return nil
}
