// Package validators encodes the business rules that guard signup and
// funding input: password complexity, email shape, funding-source formats
// (card checksum and brand, bank account and routing numbers), and deposit
// amount bounds.
//
// Validation failures are sentinel errors with field-attributable messages;
// transport layers surface them verbatim while authentication failures stay
// generic.
//
// This package decouples validation logic from transport layers and storage,
// enabling reusable, composable, and testable validation strategies.
package validators

import "github.com/mkarchin/go-bank-ledger/models"

// SignupValidator checks the registration payload against the credential
// policy before any hashing or storage work happens.
type SignupValidator interface {
	// ValidateSignup checks email shape, password complexity, and
	// national ID presence. Returns the first violated rule as a
	// sentinel error.
	ValidateSignup(req models.RegisterRequest) error
}

// FundingValidator checks a deposit request: the funding-source shape and
// the amount bounds.
type FundingValidator interface {
	// ValidateFundingSource checks the card or bank shape of source and,
	// for cards, returns the detected brand.
	ValidateFundingSource(source models.FundingSource) (models.CardBrand, error)

	// ValidateAmount checks that amountCents lies within the inclusive
	// funding bounds [10.00, 10000.00].
	ValidateAmount(amountCents int64) error
}
