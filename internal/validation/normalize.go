package validation

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var spaceRun = regexp.MustCompile(`\s+`)

// normalize applies NFKC canonicalization and trims surrounding whitespace.
// NFKC runs before any pattern matching so lookalike characters (fullwidth
// digits, compatibility forms) cannot bypass the structural checks.
func normalize(raw string) string {
	return strings.TrimSpace(norm.NFKC.String(raw))
}

// normalizeKeepSpace applies NFKC without trimming. Used for passwords, where
// surrounding whitespace must be rejected rather than silently stripped.
func normalizeKeepSpace(raw string) string {
	return norm.NFKC.String(raw)
}

// collapseSpaces folds internal whitespace runs into single spaces.
func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// NormalizeEmail lowercases and trims an email for use as an account
// identifier. It is the same normalization the email validator applies, so a
// validated email and a lockout key never drift apart.
func NormalizeEmail(raw string) string {
	return strings.ToLower(normalize(raw))
}
