package validation

import (
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 64

	// passwordSymbols is the full set of punctuation accepted in passwords.
	passwordSymbols = `.!@#$%^&*()-_=+[]{}<>?`
)

// Password validates a password against the account policy: 8-64 characters,
// no whitespace, at least one uppercase letter, one lowercase letter, one
// digit and one symbol from passwordSymbols, and not equal to the account's
// own email. The input is NFKC-normalized but deliberately not trimmed, so
// surrounding whitespace is rejected instead of silently stripped.
func Password(raw, email string) (string, *FieldError) {
	password := normalizeKeepSpace(raw)

	if n := len([]rune(password)); n < minPasswordLength || n > maxPasswordLength {
		return "", invalidFormat("password must be between 8 and 64 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return "", invalidFormat("password must not contain whitespace")
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return "", invalidFormat("password contains characters that are not allowed")
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return "", invalidFormat("password must contain at least one uppercase letter, one lowercase letter, one digit and one symbol")
	}

	if strings.EqualFold(password, NormalizeEmail(email)) {
		return "", disallowed("password must not be the same as your email address")
	}

	return password, nil
}

// PasswordConfirmation checks that the confirmation field exactly matches the
// already-validated password. No normalization is applied.
func PasswordConfirmation(confirmation, password string) *FieldError {
	if confirmation != password {
		return disallowed("passwords do not match")
	}
	return nil
}
