package store

import (
	"context"
	"time"

	"github.com/mkarchin/go-bank-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and retrieves user identity records.
type UserRepository interface {
	// CreateUser inserts a new user and returns it with server-assigned
	// fields (UserID, CreatedAt). A duplicate normalized email yields
	// [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks up a user by normalized email.
	// Returns [ErrNoUserWasFound] when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks up a user by internal id.
	// Returns [ErrNoUserWasFound] when no row matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// SessionRepository owns the sessions table. All session mutation in the
// application goes through this interface, never through ad hoc writes.
type SessionRepository interface {
	// ReplaceForUser deletes every session row belonging to
	// session.UserID and inserts session, inside one database
	// transaction. Exactly one row exists for the user afterwards no
	// matter how many existed before or how many logins race.
	ReplaceForUser(ctx context.Context, session models.Session) error

	// FindByToken returns the session row for token, or
	// [ErrSessionNotFound].
	FindByToken(ctx context.Context, token string) (models.Session, error)

	// DeleteByToken removes the row for token. Returns
	// [ErrSessionNotFound] when nothing was deleted.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes every session whose expiry is at or before
	// cutoff and reports how many rows were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// AccountRepository persists ledger accounts and applies funding deposits.
type AccountRepository interface {
	// CreateAccount opens an account with zero balance and active status.
	// A second account of the same type for the same user yields
	// [ErrAccountTypeAlreadyExists]. The inserted row is read back before
	// being returned; if the re-fetch fails the orphaned row is deleted
	// and [ErrConsistency] is returned.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccount returns the account with the given id owned by userID,
	// or [ErrAccountNotFound].
	FindAccount(ctx context.Context, userID, accountID int64) (models.Account, error)

	// ListAccounts returns every account owned by userID.
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)

	// Fund appends a completed deposit transaction and applies it to the
	// account balance inside one database transaction. The account row is
	// locked for the duration, so concurrent deposits serialize and none
	// is lost; the transaction row is inserted before the balance update.
	// Returns the created transaction and the new balance in cents.
	Fund(ctx context.Context, accountID, amountCents int64, reference string) (models.Transaction, int64, error)
}

// TransactionRepository reads the append-only transaction log.
type TransactionRepository interface {
	// PageByAccount returns one newest-first page of an account's
	// transactions plus the total row count for pagination metadata.
	PageByAccount(ctx context.Context, accountID int64, limit, offset uint64) ([]models.Transaction, int64, error)
}
