package service

import (
	"context"
	"fmt"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/utils"
	"github.com/mkarchin/go-bank-ledger/internal/validators"
	"github.com/mkarchin/go-bank-ledger/models"
)

// Pagination bounds for the transaction history endpoint.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ledgerService is the concrete implementation of LedgerService. All money
// values cross its boundary as integer cents; decimal strings exist only at
// the API edge.
type ledgerService struct {
	// accountRepository persists accounts and applies deposits.
	accountRepository store.AccountRepository

	// transactionRepository reads the append-only ledger.
	transactionRepository store.TransactionRepository

	// fundingValidator checks funding sources and amount bounds.
	fundingValidator validators.FundingValidator

	// uuidGenerator mints client-facing transaction references.
	uuidGenerator *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewLedgerService constructs a new LedgerService wired to the given
// repositories.
func NewLedgerService(accountRepository store.AccountRepository, transactionRepository store.TransactionRepository, fundingValidator validators.FundingValidator, logger *logger.Logger) LedgerService {
	return &ledgerService{
		accountRepository:     accountRepository,
		transactionRepository: transactionRepository,
		fundingValidator:      fundingValidator,
		uuidGenerator:         utils.NewUUIDGenerator(),
		logger:                logger,
	}
}

// OpenAccount opens a new account of the requested type for userID.
//
// The account starts with a zero balance and active status. A second
// account of the same type surfaces store.ErrAccountTypeAlreadyExists.
func (l *ledgerService) OpenAccount(ctx context.Context, userID int64, req models.OpenAccountRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !req.Type.Valid() {
		return models.Account{}, fmt.Errorf("%w: %q", ErrUnsupportedAccountType, req.Type)
	}

	account, err := l.accountRepository.CreateAccount(ctx, models.Account{
		UserID: userID,
		Type:   req.Type,
		Status: models.AccountStatusActive,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("type", string(req.Type)).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	account.Balance = models.FormatCents(account.BalanceCents)
	return account, nil
}

// ListAccounts returns every account owned by userID with formatted
// balances.
func (l *ledgerService) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	accounts, err := l.accountRepository.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account listing ended with error: %w", err)
	}

	for i := range accounts {
		accounts[i].Balance = models.FormatCents(accounts[i].BalanceCents)
	}

	return accounts, nil
}

// GetAccount returns a single account if userID owns it. An account that
// exists but belongs to someone else is indistinguishable from one that
// does not exist: both surface store.ErrAccountNotFound.
func (l *ledgerService) GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error) {
	account, err := l.accountRepository.FindAccount(ctx, userID, accountID)
	if err != nil {
		return models.Account{}, fmt.Errorf("account lookup ended with error: %w", err)
	}

	account.Balance = models.FormatCents(account.BalanceCents)
	return account, nil
}

// Fund applies a deposit to an account.
//
// Order of checks: ownership and active status first, then the funding
// source (card checksum and brand, or bank account and routing numbers),
// then the amount shape and bounds. Only after everything passes does the
// repository append the ledger entry and move the balance, atomically.
func (l *ledgerService) Fund(ctx context.Context, userID, accountID int64, req models.FundRequest) (models.FundResult, error) {
	log := logger.FromContext(ctx)

	account, err := l.accountRepository.FindAccount(ctx, userID, accountID)
	if err != nil {
		return models.FundResult{}, fmt.Errorf("account lookup ended with error: %w", err)
	}
	if account.Status != models.AccountStatusActive {
		return models.FundResult{}, fmt.Errorf("%w: status %q", store.ErrAccountInactive, account.Status)
	}

	if _, err = l.fundingValidator.ValidateFundingSource(req.FundingSource); err != nil {
		return models.FundResult{}, err
	}

	amountCents, err := models.ParseCents(req.Amount)
	if err != nil {
		return models.FundResult{}, err
	}
	if err = l.fundingValidator.ValidateAmount(amountCents); err != nil {
		return models.FundResult{}, err
	}

	transaction, newBalanceCents, err := l.accountRepository.Fund(ctx, accountID, amountCents, l.uuidGenerator.Generate())
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Int64("amount_cents", amountCents).Msg("funding ended with error")
		return models.FundResult{}, fmt.Errorf("funding ended with error: %w", err)
	}

	transaction.Amount = models.FormatCents(transaction.AmountCents)
	return models.FundResult{
		Transaction: transaction,
		NewBalance:  models.FormatCents(newBalanceCents),
	}, nil
}

// Transactions returns one newest-first page of an account's ledger
// entries.
//
// Ownership is verified before anything is read. Page numbers start at 1;
// out-of-range values are clamped rather than rejected, and the limit is
// capped at maxPageLimit.
func (l *ledgerService) Transactions(ctx context.Context, userID, accountID int64, page, limit int) (models.TransactionsPage, error) {
	if _, err := l.accountRepository.FindAccount(ctx, userID, accountID); err != nil {
		return models.TransactionsPage{}, fmt.Errorf("account lookup ended with error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := uint64(page-1) * uint64(limit)
	transactions, totalCount, err := l.transactionRepository.PageByAccount(ctx, accountID, uint64(limit), offset)
	if err != nil {
		return models.TransactionsPage{}, fmt.Errorf("transaction page read ended with error: %w", err)
	}

	for i := range transactions {
		transactions[i].Amount = models.FormatCents(transactions[i].AmountCents)
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	return models.TransactionsPage{
		Transactions: transactions,
		Pagination: models.Pagination{
			Page:            page,
			Limit:           limit,
			TotalCount:      totalCount,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1 && totalCount > 0,
		},
	}, nil
}
