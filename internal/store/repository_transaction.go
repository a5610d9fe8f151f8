package store

import (
	"context"
	"fmt"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/models"
)

// transactionRepository is the PostgreSQL-backed implementation of
// [TransactionRepository]. The transactions table is append-only; this type
// never mutates existing rows.
type transactionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionRepository constructs a [TransactionRepository] backed by
// the provided database connection and logger.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// PageByAccount returns one newest-first page of the account's transaction
// history plus the total row count. A pure read of stored state; pagination
// math happens in the service layer.
func (r *transactionRepository) PageByAccount(ctx context.Context, accountID int64, limit, offset uint64) ([]models.Transaction, int64, error) {
	log := logger.FromContext(ctx)

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countTransactionsByAccount, accountID).Scan(&totalCount); err != nil {
		log.Err(err).Str("func", "*transactionRepository.PageByAccount").Int64("account_id", accountID).Msg("failed to count transactions")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildTransactionsPageQuery(accountID, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.PageByAccount").Msg("failed to build page query")
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.PageByAccount").Int64("account_id", accountID).Msg("failed to execute page query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, limit)
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(&transaction.TransactionID, &transaction.Reference, &transaction.AccountID, &transaction.Type, &transaction.AmountCents, &transaction.Status, &transaction.CreatedAt); err != nil {
			log.Err(err).Str("func", "*transactionRepository.PageByAccount").Msg("failed to scan transaction row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*transactionRepository.PageByAccount").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transactions, totalCount, nil
}
