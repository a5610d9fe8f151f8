package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/models"
)

// fundMaxAttempts bounds the retry loop around the funding transaction.
// Retries happen only for errors the classifier marks retryable
// (serialization failures, deadlocks, transient connection loss).
const fundMaxAttempts = 3

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. The funding path runs its read-modify-write under a
// row lock so the balance never loses a concurrent update.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount opens a new account with zero balance and active status.
//
// The inserted row is immediately read back; if that read fails, the
// orphaned row is deleted (compensating action) and [ErrConsistency] is
// returned. The caller never receives a fabricated account in place of the
// stored one.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on (user_id, type) →
//     [ErrAccountTypeAlreadyExists].
//   - Re-fetch failure → [ErrConsistency] after the compensating delete.
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	var accountID int64
	row := r.db.QueryRowContext(ctx, createAccount, account.UserID, account.Type)
	if err := row.Scan(&accountID); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Int64("user_id", account.UserID).Msg("failed to insert account")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Account{}, ErrAccountTypeAlreadyExists
		}
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := r.FindAccount(ctx, account.UserID, accountID)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Int64("account_id", accountID).Msg("inserted account could not be read back, deleting orphan")

		if _, delErr := r.db.ExecContext(ctx, deleteAccountByID, accountID); delErr != nil {
			log.Err(delErr).Str("func", "*accountRepository.CreateAccount").Int64("account_id", accountID).Msg("failed to delete orphaned account row")
		}

		return models.Account{}, fmt.Errorf("%w: %w", ErrConsistency, err)
	}

	return created, nil
}

// FindAccount retrieves an account by id scoped to its owner. An account
// belonging to another user is indistinguishable from a missing one.
func (r *accountRepository) FindAccount(ctx context.Context, userID, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	var account models.Account
	row := r.db.QueryRowContext(ctx, findAccountByID, accountID, userID)

	if err := row.Scan(&account.AccountID, &account.UserID, &account.Type, &account.BalanceCents, &account.Status, &account.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}

		log.Err(err).Str("func", "*accountRepository.FindAccount").Int64("account_id", accountID).Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

// ListAccounts returns all accounts owned by userID ordered by id.
func (r *accountRepository) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAccountsByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Int64("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, 4)
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.AccountID, &account.UserID, &account.Type, &account.BalanceCents, &account.Status, &account.CreatedAt); err != nil {
			log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return accounts, nil
}

// Fund applies a deposit to an account inside one database transaction:
//
//  1. SELECT ... FOR UPDATE locks the account row, serializing concurrent
//     deposits to the same account — N concurrent deposits of amount A
//     always leave balance = N*A and exactly N transaction rows.
//  2. The transaction row is inserted before the balance update, keeping
//     the log a consistent audit trail.
//  3. Integer-cent arithmetic only; no floating point enters the path.
//
// A cancelled context rolls the whole transaction back, so the
// append-then-update pair both land or neither does. Retryable driver
// errors (serialization failure, deadlock) restart the transaction up to
// [fundMaxAttempts] times.
func (r *accountRepository) Fund(ctx context.Context, accountID, amountCents int64, reference string) (models.Transaction, int64, error) {
	var (
		transaction models.Transaction
		newBalance  int64
		err         error
	)

	for attempt := 1; attempt <= fundMaxAttempts; attempt++ {
		transaction, newBalance, err = r.fundOnce(ctx, accountID, amountCents, reference)
		if err == nil || r.db.errorClassificator.Classify(err) != Retryable {
			return transaction, newBalance, err
		}

		logger.FromContext(ctx).Warn().
			Err(err).
			Int64("account_id", accountID).
			Int("attempt", attempt).
			Msg("retryable error during funding transaction")
	}

	return models.Transaction{}, 0, err
}

func (r *accountRepository) fundOnce(ctx context.Context, accountID, amountCents int64, reference string) (models.Transaction, int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.fundOnce").Msg("failed to begin transaction")
		return models.Transaction{}, 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var (
		balanceCents int64
		status       models.AccountStatus
	)
	if err := tx.QueryRowContext(ctx, selectAccountForUpdate, accountID).Scan(&balanceCents, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, 0, ErrAccountNotFound
		}

		log.Err(err).Str("func", "*accountRepository.fundOnce").Int64("account_id", accountID).Msg("failed to lock account row")
		return models.Transaction{}, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if status != models.AccountStatusActive {
		return models.Transaction{}, 0, ErrAccountInactive
	}

	var transaction models.Transaction
	row := tx.QueryRowContext(ctx, insertTransaction, reference, accountID, amountCents)
	if err := row.Scan(&transaction.TransactionID, &transaction.Reference, &transaction.AccountID, &transaction.Type, &transaction.AmountCents, &transaction.Status, &transaction.CreatedAt); err != nil {
		log.Err(err).Str("func", "*accountRepository.fundOnce").Int64("account_id", accountID).Msg("failed to append transaction")
		return models.Transaction{}, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	newBalance := balanceCents + amountCents
	if _, err := tx.ExecContext(ctx, updateAccountBalance, newBalance, accountID); err != nil {
		log.Err(err).Str("func", "*accountRepository.fundOnce").Int64("account_id", accountID).Msg("failed to update balance")
		return models.Transaction{}, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*accountRepository.fundOnce").Msg("failed to commit transaction")
		return models.Transaction{}, 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return transaction, newBalance, nil
}
