package validators

import (
	"net/mail"
	"unicode"

	"github.com/mkarchin/go-bank-ledger/models"
)

// minPasswordLength is the credential policy floor. Complexity classes are
// checked on top of it.
const minPasswordLength = 12

type signupValidator struct {
}

// NewSignupValidator constructs the stateless [SignupValidator].
func NewSignupValidator() SignupValidator {
	return &signupValidator{}
}

// ValidateSignup implements [SignupValidator].
func (v *signupValidator) ValidateSignup(req models.RegisterRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return ErrInvalidEmail
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	if req.NationalID == "" {
		return ErrNationalIDMissing
	}

	return nil
}

// validatePassword enforces the complexity policy: length ≥ 12 with
// uppercase, lowercase, digit, and special character classes all present.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	if !upper || !lower || !digit || !special {
		return ErrPasswordTooWeak
	}

	return nil
}
