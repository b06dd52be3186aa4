package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	cardPattern   = regexp.MustCompile(`^[0-9]{13,19}$`)
	expPattern    = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	namePattern   = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s'\-]{2,60}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{7,15}$`)
)

const maxEmailLength = 254

// maxExpiryYears caps how far in the future a card expiry may lie.
const maxExpiryYears = 15

// CardNumber validates a payment card number. Spaces and hyphens are stripped
// before checking that the value is 13-19 digits passing the Luhn checksum.
func CardNumber(raw string) (string, *FieldError) {
	card := normalize(raw)
	card = strings.ReplaceAll(card, " ", "")
	card = strings.ReplaceAll(card, "-", "")
	if !cardPattern.MatchString(card) {
		return "", invalidFormat("card number must contain only digits and be 13 to 19 digits long")
	}
	if !luhnValid(card) {
		return "", invalidFormat("card number is not valid")
	}
	return card, nil
}

// ExpDate validates an MM/YY expiration date against the current UTC month.
// Two-digit years are compared against the last two digits of the current
// year, so dates more than maxExpiryYears out are rejected rather than
// wrapping.
func ExpDate(raw string, now time.Time) (string, *FieldError) {
	exp := normalize(raw)
	m := expPattern.FindStringSubmatch(exp)
	if m == nil {
		return "", invalidFormat("expiration date must use MM/YY format with month between 01 and 12")
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	utc := now.UTC()
	currentYear := utc.Year() % 100
	currentMonth := int(utc.Month())

	if year < currentYear || (year == currentYear && month < currentMonth) {
		return "", expired("card has expired")
	}
	if year > currentYear+maxExpiryYears {
		return "", expired("expiration date is too far in the future")
	}
	return exp, nil
}

// CVV validates the card security code shape. The value itself is never
// returned: CVVs must not outlive validation, and the signature makes that a
// compile-time guarantee rather than caller discipline.
func CVV(raw string) *FieldError {
	cvv := normalize(raw)
	if !cvvPattern.MatchString(cvv) {
		return invalidFormat("CVV must be 3 or 4 digits")
	}
	return nil
}

// Email validates and normalizes an email address (trimmed, lowercased).
func Email(raw string) (string, *FieldError) {
	email := strings.ToLower(normalize(raw))
	if len(email) > maxEmailLength {
		return "", invalidFormat("email must be at most 254 characters")
	}
	if !emailPattern.MatchString(email) {
		return "", invalidFormat("email address is not valid")
	}
	return email, nil
}

// Name validates a personal name (cardholder or account holder). Internal
// whitespace runs collapse to single spaces before the character check.
func Name(raw string) (string, *FieldError) {
	name := collapseSpaces(normalize(raw))
	if !namePattern.MatchString(name) {
		return "", invalidFormat("name must be 2 to 60 characters and contain only letters, spaces, apostrophes or hyphens")
	}
	return name, nil
}

// Mobile validates a phone number: digits only after stripping spaces, with no
// international prefix.
func Mobile(raw string) (string, *FieldError) {
	mobile := strings.ReplaceAll(normalize(raw), " ", "")
	if !mobilePattern.MatchString(mobile) {
		return "", invalidFormat("mobile number must be 7 to 15 digits with no country prefix or punctuation")
	}
	return mobile, nil
}
