package models

import "time"

// AccountType is the product type of a bank account.
type AccountType string

// Supported account types. A user may open at most one account of each type.
const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// AccountStatus is the lifecycle state of a bank account.
type AccountStatus string

// Account lifecycle states. Only active accounts accept deposits.
const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Account is a ledger account owned by a user. The balance is always the
// exact integer-cent sum of all completed deposits; it is mutated only
// through the ledger service's funding operation.
type Account struct {
	// AccountID is the internal unique identifier of the account.
	AccountID int64 `json:"id"`

	// UserID is the owning user. Every operation verifies ownership
	// before touching the account.
	UserID int64 `json:"-"`

	// Type is the account product type (checking or savings).
	Type AccountType `json:"type"`

	// BalanceCents is the current balance in integer minor units.
	// Integer cents avoid binary floating-point drift across repeated
	// deposits.
	BalanceCents int64 `json:"-"`

	// Balance is the decimal string form of BalanceCents ("2046.00"),
	// populated at the API boundary.
	Balance string `json:"balance"`

	// Status is the lifecycle state of the account.
	Status AccountStatus `json:"status"`

	// CreatedAt is the timestamp when the account was opened.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
