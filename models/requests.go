package models

// RegisterRequest is the signup payload. Password and NationalID are
// plaintext only for the duration of the request: the password is bcrypt
// hashed and the national ID encrypted before anything touches storage.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OpenAccountRequest is the account-opening payload.
type OpenAccountRequest struct {
	Type AccountType `json:"type"`
}

// FundRequest is the deposit payload. Amount is a decimal string with at
// most two fractional digits; bounds are enforced by the ledger service.
type FundRequest struct {
	Amount        string        `json:"amount"`
	FundingSource FundingSource `json:"funding_source"`
}
