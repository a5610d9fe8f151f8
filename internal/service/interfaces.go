package service

import (
	"context"

	"github.com/mkarchin/go-bank-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns user identity: registration, credential verification,
// and the authorized profile view.
type AuthService interface {
	// RegisterUser validates the signup payload, hashes the password,
	// encrypts the national ID, and persists the new user. Validation
	// failures surface as validators sentinel errors; a duplicate email
	// surfaces store.ErrEmailAlreadyExists.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies email and password. Every authentication failure,
	// unknown email or wrong password alike, collapses to
	// ErrInvalidCredentials so a caller cannot probe which factor failed.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Profile returns the owner's view of their identity record, with the
	// national ID decrypted transiently and reduced to its last four
	// digits. A decrypt failure fails the whole request.
	Profile(ctx context.Context, userID int64) (models.Profile, error)
}

// SessionService owns the session lifecycle: issue on login, validate on
// every authenticated request, delete on logout, sweep when expired.
type SessionService interface {
	// Create issues a signed session token for userID and replaces any
	// prior session rows of that user with the new one.
	Create(ctx context.Context, userID int64) (models.Session, error)

	// Validate checks the token signature and issuer, requires a matching
	// session row, and rejects sessions within the expiry safety buffer,
	// deleting the stale row opportunistically. Every failure collapses
	// to ErrSessionExpiredOrInvalid.
	Validate(ctx context.Context, token string) (models.Session, error)

	// Logout ends the session for token. The result reports success both
	// when a row was deleted and when no session existed; only an actual
	// storage failure is an error.
	Logout(ctx context.Context, token string) (models.LogoutResult, error)

	// SweepExpired deletes session rows that are past their expiry and
	// reports how many were removed.
	SweepExpired(ctx context.Context) (int64, error)
}

// LedgerService owns accounts and the append-only transaction log.
type LedgerService interface {
	// OpenAccount opens an account of the requested type for userID, with
	// zero balance and active status.
	OpenAccount(ctx context.Context, userID int64, req models.OpenAccountRequest) (models.Account, error)

	// ListAccounts returns every account owned by userID.
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)

	// GetAccount returns the account with accountID if userID owns it,
	// or store.ErrAccountNotFound.
	GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error)

	// Fund validates the funding source and amount, verifies ownership
	// and active status, and applies the deposit atomically. Returns the
	// appended ledger entry and the new balance.
	Fund(ctx context.Context, userID, accountID int64, req models.FundRequest) (models.FundResult, error)

	// Transactions returns one newest-first page of the account's ledger
	// entries plus pagination metadata. Ownership is verified first.
	Transactions(ctx context.Context, userID, accountID int64, page, limit int) (models.TransactionsPage, error)
}
