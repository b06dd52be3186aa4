package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelarosa/entradas/internal/validation"
)

// fixedNow pins the clock for expiry checks: June 2025.
var fixedNow = time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

func TestCardNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		clean   string
		wantErr bool
	}{
		{"valid visa test number", "4111111111111111", "4111111111111111", false},
		{"spaces stripped", "4111 1111 1111 1111", "4111111111111111", false},
		{"hyphens stripped", "4111-1111-1111-1111", "4111111111111111", false},
		{"luhn failure", "4111111111111112", "", true},
		{"too short", "411111111111", "", true},
		{"too long", "41111111111111111111", "", true},
		{"letters rejected", "4111a11111111111", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := validation.CardNumber(tt.input)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Empty(t, clean, "clean value must be empty on error")
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.clean, clean)
			}
		})
	}
}

func TestCardNumberFullwidthDigitsNormalized(t *testing.T) {
	// NFKC folds fullwidth digits to ASCII before the structural check.
	clean, err := validation.CardNumber("４111111111111111")
	require.Nil(t, err)
	assert.Equal(t, "4111111111111111", clean)
}

func TestExpDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind validation.Kind
	}{
		{"current month valid", "06/25", 0},
		{"future month valid", "12/25", 0},
		{"next year valid", "01/26", 0},
		{"previous month expired", "05/25", validation.Expired},
		{"previous year expired", "06/24", validation.Expired},
		{"sixteen years out too far", "06/41", validation.Expired},
		{"fifteen years out allowed", "06/40", 0},
		{"month thirteen", "13/25", validation.InvalidFormat},
		{"month zero", "00/25", validation.InvalidFormat},
		{"missing slash", "0625", validation.InvalidFormat},
		{"four digit year", "06/2025", validation.InvalidFormat},
		{"empty", "", validation.InvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := validation.ExpDate(tt.input, fixedNow)
			if tt.wantKind == 0 {
				require.Nil(t, err)
				assert.Equal(t, tt.input, clean)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantKind, err.Kind)
				assert.Empty(t, clean)
			}
		})
	}
}

func TestCVV(t *testing.T) {
	assert.Nil(t, validation.CVV("123"))
	assert.Nil(t, validation.CVV("1234"))
	assert.Nil(t, validation.CVV(" 123 "))
	assert.NotNil(t, validation.CVV("12"))
	assert.NotNil(t, validation.CVV("12345"))
	assert.NotNil(t, validation.CVV("12a"))
	assert.NotNil(t, validation.CVV(""))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		clean   string
		wantErr bool
	}{
		{"simple", "user@example.com", "user@example.com", false},
		{"uppercase lowered", "User@Example.COM", "user@example.com", false},
		{"surrounding space trimmed", "  user@example.com  ", "user@example.com", false},
		{"plus tag", "user+tag@example.com", "user+tag@example.com", false},
		{"missing domain dot", "user@example", "", true},
		{"missing at", "userexample.com", "", true},
		{"empty", "", "", true},
		{"too long", strings.Repeat("a", 250) + "@b.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := validation.Email(tt.input)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Empty(t, clean)
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.clean, clean)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		clean   string
		wantErr bool
	}{
		{"plain", "Ana Perez", "Ana Perez", false},
		{"accented", "José Müller", "José Müller", false},
		{"apostrophe and hyphen", "O'Neil-Smith", "O'Neil-Smith", false},
		{"internal runs collapsed", "Ana   \t Perez", "Ana Perez", false},
		{"single character", "A", "", true},
		{"digits rejected", "Ana P3rez", "", true},
		{"too long", strings.Repeat("a", 61), "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := validation.Name(tt.input)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Empty(t, clean)
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.clean, clean)
			}
		})
	}
}

func TestMobile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		clean   string
		wantErr bool
	}{
		{"seven digits", "5551234", "5551234", false},
		{"fifteen digits", "555123456789012", "555123456789012", false},
		{"internal spaces stripped", "555 123 4567", "5551234567", false},
		{"six digits", "555123", "", true},
		{"sixteen digits", "5551234567890123", "", true},
		{"plus prefix rejected", "+15551234567", "", true},
		{"letters rejected", "555HOME", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := validation.Mobile(tt.input)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Empty(t, clean)
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.clean, clean)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	const email = "user@example.com"

	tests := []struct {
		name     string
		input    string
		wantKind validation.Kind
	}{
		{"valid", "Password1!", 0},
		{"no uppercase", "password1!", validation.InvalidFormat},
		{"no lowercase", "PASSWORD1!", validation.InvalidFormat},
		{"no digit", "Password!!", validation.InvalidFormat},
		{"no symbol", "Password11", validation.InvalidFormat},
		{"trailing space", "Password1! ", validation.InvalidFormat},
		{"leading space", " Password1!", validation.InvalidFormat},
		{"internal space", "Pass word1!", validation.InvalidFormat},
		{"too short", "Pa1!", validation.InvalidFormat},
		{"too long", strings.Repeat("Aa1!", 17), validation.InvalidFormat},
		{"disallowed character", "Password1!ç", validation.InvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := validation.Password(tt.input, email)
			if tt.wantKind == 0 {
				require.Nil(t, err)
				assert.Equal(t, tt.input, clean)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantKind, err.Kind)
				assert.Empty(t, clean)
			}
		})
	}
}

func TestPasswordMustNotEqualEmail(t *testing.T) {
	// A password identical to the account email is rejected even though it
	// satisfies every pattern rule. The comparison is case-insensitive
	// against the normalized email.
	clean, err := validation.Password("Ana.Perez1@mail.com", "ANA.PEREZ1@mail.com ")
	require.NotNil(t, err)
	assert.Equal(t, validation.DisallowedValue, err.Kind)
	assert.Empty(t, clean)
}

func TestPasswordConfirmation(t *testing.T) {
	assert.Nil(t, validation.PasswordConfirmation("Password1!", "Password1!"))

	err := validation.PasswordConfirmation("Password1?", "Password1!")
	require.NotNil(t, err)
	assert.Equal(t, validation.DisallowedValue, err.Kind)
}

// Stable normalization: feeding a validator its own clean output must yield
// the same clean output with no error.
func TestValidatorsAreIdempotent(t *testing.T) {
	card, err := validation.CardNumber("4111-1111-1111-1111")
	require.Nil(t, err)
	again, err := validation.CardNumber(card)
	require.Nil(t, err)
	assert.Equal(t, card, again)

	email, err := validation.Email("  User@Example.COM ")
	require.Nil(t, err)
	again, err = validation.Email(email)
	require.Nil(t, err)
	assert.Equal(t, email, again)

	name, err := validation.Name("  Ana \t Perez ")
	require.Nil(t, err)
	again, err = validation.Name(name)
	require.Nil(t, err)
	assert.Equal(t, name, again)

	mobile, err := validation.Mobile("555 123 4567")
	require.Nil(t, err)
	again, err = validation.Mobile(mobile)
	require.Nil(t, err)
	assert.Equal(t, mobile, again)

	exp, err := validation.ExpDate(" 12/30 ", fixedNow)
	require.Nil(t, err)
	again, err = validation.ExpDate(exp, fixedNow)
	require.Nil(t, err)
	assert.Equal(t, exp, again)
}
