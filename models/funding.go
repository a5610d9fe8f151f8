package models

// FundingSourceKind discriminates the two accepted funding source shapes.
type FundingSourceKind string

// Accepted funding source kinds. These are locally validated identifiers
// only (format + checksum), not real payment rails.
const (
	FundingSourceCard FundingSourceKind = "card"
	FundingSourceBank FundingSourceKind = "bank"
)

// CardBrand is the detected card network of a card funding source.
type CardBrand string

// Card brands recognised by the funding-source validator.
const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandDiscover   CardBrand = "discover"
)

// FundingSource describes where deposited money notionally comes from.
// Exactly one of the card or bank field groups must be populated,
// matching Kind.
type FundingSource struct {
	// Kind selects the card or bank shape.
	Kind FundingSourceKind `json:"kind"`

	// CardNumber is the primary account number of a card source.
	// Must pass length and Luhn checks and map to a known brand.
	CardNumber string `json:"card_number,omitempty"`

	// AccountNumber is the digit-only bank account number of a bank source.
	AccountNumber string `json:"account_number,omitempty"`

	// RoutingNumber is the 9-digit ABA routing number of a bank source.
	RoutingNumber string `json:"routing_number,omitempty"`
}
