package validation

import "time"

// Form field keys, shared between orchestrators and handlers so error maps
// line up with the form fields the client submitted.
const (
	FieldCardNumber      = "card_number"
	FieldExpDate         = "exp_date"
	FieldCVV             = "cvv"
	FieldNameOnCard      = "name_on_card"
	FieldBillingEmail    = "billing_email"
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldMobile          = "mobile"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldCredentials     = "credentials"
)

// Outcome aggregates a form validation pass. A field key appears in Errors iff
// its validator rejected the value; it appears in Clean only when its
// validator succeeded. CVV values never appear in Clean.
type Outcome struct {
	Clean  map[string]string
	Errors map[string]string
}

func newOutcome() Outcome {
	return Outcome{
		Clean:  make(map[string]string),
		Errors: make(map[string]string),
	}
}

// Valid reports whether every field passed.
func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

func (o Outcome) accept(field, clean string) {
	o.Clean[field] = clean
}

func (o Outcome) reject(field string, err *FieldError) {
	o.Errors[field] = err.Message
}

// PaymentForm carries the raw checkout form fields.
type PaymentForm struct {
	CardNumber   string
	ExpDate      string
	CVV          string
	NameOnCard   string
	BillingEmail string
}

// Validate runs every field validator independently and aggregates the
// results; a submission with several bad fields reports all of them in one
// pass. The expiry check is evaluated against now, which callers pin for
// deterministic tests.
func (f PaymentForm) Validate(now time.Time) Outcome {
	out := newOutcome()

	if card, err := CardNumber(f.CardNumber); err != nil {
		out.reject(FieldCardNumber, err)
	} else {
		out.accept(FieldCardNumber, card)
	}

	if exp, err := ExpDate(f.ExpDate, now); err != nil {
		out.reject(FieldExpDate, err)
	} else {
		out.accept(FieldExpDate, exp)
	}

	// CVV is checked for shape only; the value is discarded either way.
	if err := CVV(f.CVV); err != nil {
		out.reject(FieldCVV, err)
	}

	if name, err := Name(f.NameOnCard); err != nil {
		out.reject(FieldNameOnCard, err)
	} else {
		out.accept(FieldNameOnCard, name)
	}

	if email, err := Email(f.BillingEmail); err != nil {
		out.reject(FieldBillingEmail, err)
	} else {
		out.accept(FieldBillingEmail, email)
	}

	return out
}

// LoginInput carries raw login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks the structural shape of the credentials. Any problem yields
// a single generic "credentials" error rather than field-specific messages,
// so a probe cannot learn which field was wrong. On success Clean holds the
// normalized email.
func (f LoginInput) Validate() Outcome {
	out := newOutcome()

	email, err := Email(f.Email)
	if err != nil || f.Password == "" {
		out.Errors[FieldCredentials] = "Invalid credentials"
		return out
	}
	out.accept(FieldEmail, email)
	return out
}

// RegistrationForm carries the raw account registration fields.
type RegistrationForm struct {
	FullName        string
	Email           string
	Mobile          string
	Password        string
	PasswordConfirm string
}

// Validate aggregates field-specific errors; unlike login, registration tells
// the user exactly which field to fix. The confirmation is compared against
// the validated password, so a rejected password also fails confirmation
// checks only when the raw strings differ.
func (f RegistrationForm) Validate() Outcome {
	out := newOutcome()

	if name, err := Name(f.FullName); err != nil {
		out.reject(FieldFullName, err)
	} else {
		out.accept(FieldFullName, name)
	}

	email, emailErr := Email(f.Email)
	if emailErr != nil {
		out.reject(FieldEmail, emailErr)
	} else {
		out.accept(FieldEmail, email)
	}

	if mobile, err := Mobile(f.Mobile); err != nil {
		out.reject(FieldMobile, err)
	} else {
		out.accept(FieldMobile, mobile)
	}

	password, passErr := Password(f.Password, f.Email)
	if passErr != nil {
		out.reject(FieldPassword, passErr)
	} else {
		out.accept(FieldPassword, password)
		if err := PasswordConfirmation(f.PasswordConfirm, password); err != nil {
			out.reject(FieldPasswordConfirm, err)
		}
	}

	return out
}

// ProfileForm carries the editable profile fields.
type ProfileForm struct {
	FullName string
	Mobile   string
}

// Validate aggregates field-specific errors for a profile edit.
func (f ProfileForm) Validate() Outcome {
	out := newOutcome()

	if name, err := Name(f.FullName); err != nil {
		out.reject(FieldFullName, err)
	} else {
		out.accept(FieldFullName, name)
	}

	if mobile, err := Mobile(f.Mobile); err != nil {
		out.reject(FieldMobile, err)
	} else {
		out.accept(FieldMobile, mobile)
	}

	return out
}
