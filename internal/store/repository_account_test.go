package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/models"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &accountRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func accountColumns() []string {
	return []string{"account_id", "user_id", "type", "balance_cents", "status", "created_at"}
}

func transactionColumns() []string {
	return []string{"transaction_id", "reference", "account_id", "type", "amount_cents", "status", "created_at"}
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(int64(5), models.AccountTypeChecking).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(11)))

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(11), int64(5)).
		WillReturnRows(sqlmock.
			NewRows(accountColumns()).
			AddRow(int64(11), int64(5), "checking", int64(0), "active", now))

	created, err := repo.CreateAccount(context.Background(), models.Account{UserID: 5, Type: models.AccountTypeChecking})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.AccountID != 11 {
		t.Errorf("expected AccountID=11, got %d", created.AccountID)
	}
	if created.BalanceCents != 0 {
		t.Errorf("expected zero opening balance, got %d", created.BalanceCents)
	}
	if created.Status != models.AccountStatusActive {
		t.Errorf("expected active status, got %s", created.Status)
	}
}

func TestCreateAccount_DuplicateType(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(int64(5), models.AccountTypeChecking).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAccount(context.Background(), models.Account{UserID: 5, Type: models.AccountTypeChecking})
	if !errors.Is(err, ErrAccountTypeAlreadyExists) {
		t.Fatalf("expected ErrAccountTypeAlreadyExists, got %v", err)
	}
}

func TestCreateAccount_RefetchFailureDeletesOrphan(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(int64(5), models.AccountTypeChecking).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(11)))

	// Re-fetch comes back empty, so the inserted row must be removed and
	// no fabricated account returned.
	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(11), int64(5)).
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.CreateAccount(context.Background(), models.Account{UserID: 5, Type: models.AccountTypeChecking})
	if !errors.Is(err, ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindAccount_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(99), int64(5)).
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	_, err := repo.FindAccount(context.Background(), 5, 99)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestListAccounts_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	now := time.Now()

	rows := sqlmock.
		NewRows(accountColumns()).
		AddRow(int64(11), int64(5), "checking", int64(102300), "active", now).
		AddRow(int64(12), int64(5), "savings", int64(0), "active", now)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	accounts, err := repo.ListAccounts(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].BalanceCents != 102300 {
		t.Errorf("expected balance 102300, got %d", accounts[0].BalanceCents)
	}
}

func TestListAccounts_Empty(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	accounts, err := repo.ListAccounts(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("expected empty slice, got %d accounts", len(accounts))
	}
}

func TestFund_AppendsEntryAndUpdatesBalanceInOneTx(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	now := time.Now()
	reference := "0191b2c3-aaaa-7bbb-cccc-ddddeeeeffff"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_cents, status FROM accounts").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents", "status"}).AddRow(int64(100000), "active"))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(reference, int64(11), int64(1023)).
		WillReturnRows(sqlmock.
			NewRows(transactionColumns()).
			AddRow(int64(201), reference, int64(11), "deposit", int64(1023), "completed", now))
	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(101023), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transaction, newBalance, err := repo.Fund(context.Background(), 11, 1023, reference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newBalance != 101023 {
		t.Errorf("expected new balance 101023, got %d", newBalance)
	}
	if transaction.AmountCents != 1023 {
		t.Errorf("expected amount 1023, got %d", transaction.AmountCents)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFund_AccountNotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_cents, status FROM accounts").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents", "status"}))
	mock.ExpectRollback()

	_, _, err := repo.Fund(context.Background(), 99, 1023, "ref")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFund_InactiveAccount(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_cents, status FROM accounts").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents", "status"}).AddRow(int64(0), "frozen"))
	mock.ExpectRollback()

	_, _, err := repo.Fund(context.Background(), 11, 1023, "ref")
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestFund_RetriesOnSerializationFailure(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	now := time.Now()
	reference := "0191b2c3-aaaa-7bbb-cccc-ddddeeeeffff"

	// First attempt loses a serialization conflict at commit.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_cents, status FROM accounts").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents", "status"}).AddRow(int64(0), "active"))
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.
			NewRows(transactionColumns()).
			AddRow(int64(201), reference, int64(11), "deposit", int64(1023), "completed", now))
	mock.ExpectExec("UPDATE accounts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(pgError(pgerrcode.SerializationFailure))

	// Second attempt succeeds.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_cents, status FROM accounts").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents", "status"}).AddRow(int64(1023), "active"))
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.
			NewRows(transactionColumns()).
			AddRow(int64(202), reference, int64(11), "deposit", int64(1023), "completed", now))
	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(2046), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, newBalance, err := repo.Fund(context.Background(), 11, 1023, reference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newBalance != 2046 {
		t.Errorf("expected new balance 2046, got %d", newBalance)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFund_NonRetryableErrorFailsImmediately(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_cents, status FROM accounts").
		WithArgs(int64(11)).
		WillReturnError(pgError(pgerrcode.UndefinedTable))
	mock.ExpectRollback()

	_, _, err := repo.Fund(context.Background(), 11, 1023, "ref")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
