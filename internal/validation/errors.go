// Package validation implements the field validation pipeline for account and
// payment forms. Every validator is a pure function from one raw input string
// to a normalized clean value or a FieldError; invalid input is always a
// normal return value, never a panic.
package validation

// Kind classifies why a field was rejected.
type Kind int

const (
	// InvalidFormat means the value failed a pattern or length check.
	InvalidFormat Kind = iota + 1
	// Expired means the value failed a wall-clock comparison.
	Expired
	// DisallowedValue means the value is well-formed but semantically rejected,
	// e.g. a password equal to the account email.
	DisallowedValue
)

// FieldError describes a single field rejection with a user-facing message.
type FieldError struct {
	Kind    Kind
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func invalidFormat(msg string) *FieldError {
	return &FieldError{Kind: InvalidFormat, Message: msg}
}

func expired(msg string) *FieldError {
	return &FieldError{Kind: Expired, Message: msg}
}

func disallowed(msg string) *FieldError {
	return &FieldError{Kind: DisallowedValue, Message: msg}
}
