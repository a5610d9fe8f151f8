package models

import "time"

// TransactionType classifies a ledger entry.
type TransactionType string

// Ledger entry types. Withdrawals are modeled but not reachable through the
// current funding flows.
const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

// Settlement states. Only completed entries contribute to the balance.
const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is a single append-only ledger entry. A Transaction row is
// written before the corresponding Account balance update so the log is
// always a consistent audit trail.
type Transaction struct {
	// TransactionID is the internal unique identifier of the entry.
	TransactionID int64 `json:"id"`

	// Reference is a UUID exposed to clients instead of the serial ID.
	Reference string `json:"reference"`

	// AccountID is the ledger account this entry belongs to.
	AccountID int64 `json:"account_id"`

	// Type classifies the entry (deposit or withdrawal).
	Type TransactionType `json:"type"`

	// AmountCents is the entry amount in integer minor units.
	AmountCents int64 `json:"-"`

	// Amount is the decimal string form of AmountCents ("37.42"),
	// populated at the API boundary.
	Amount string `json:"amount"`

	// Status is the settlement state of the entry.
	Status TransactionStatus `json:"status"`

	// CreatedAt is the timestamp when the entry was appended.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}
