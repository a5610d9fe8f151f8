package models

// LogoutResult reports the outcome of a logout attempt. Success is true both
// when a session row was verifiably deleted and when there was nothing to
// log out of; the message distinguishes the two for the client.
type LogoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FundResult is the response of a successful funding operation: the ledger
// entry that was appended and the balance after it was applied.
type FundResult struct {
	Transaction Transaction `json:"transaction"`
	NewBalance  string      `json:"new_balance"`
}

// Pagination carries page metadata computed from page, limit, and the total
// row count of the underlying query.
type Pagination struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalCount      int64 `json:"total_count"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// TransactionsPage is one page of an account's transaction history,
// ordered newest-first.
type TransactionsPage struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// Profile is the authorized owner's view of their own identity record.
// NationalIDLast4 exposes only the tail of the decrypted national ID.
type Profile struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	NationalIDLast4 string `json:"national_id_last4"`
}
