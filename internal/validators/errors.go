package validators

import "errors"

// Validation sentinels. Each carries the field-attributable message that is
// surfaced to the client verbatim.
var (
	ErrInvalidEmail      = errors.New("a valid email address is required")
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters long")
	ErrPasswordTooWeak   = errors.New("password must contain uppercase, lowercase, digit and special characters")
	ErrNationalIDMissing = errors.New("national id is required")

	ErrAmountBelowMinimum = errors.New("deposit amount must be at least 10.00")
	ErrAmountAboveMaximum = errors.New("deposit amount must not exceed 10000.00")

	ErrUnknownFundingKind   = errors.New("funding source must be card or bank")
	ErrInvalidCardNumber    = errors.New("card number failed checksum validation")
	ErrUnknownCardBrand     = errors.New("card number does not match a supported brand")
	ErrInvalidAccountNumber = errors.New("bank account number must contain digits only")
	ErrInvalidRoutingNumber = errors.New("routing number must be exactly 9 digits")
)
