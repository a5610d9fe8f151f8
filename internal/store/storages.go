package store

import (
	"context"

	"github.com/mkarchin/go-bank-ledger/internal/config"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
)

// Storages aggregates every repository built on the shared database
// connection. It is the single persistence entry point handed to the
// service layer.
type Storages struct {
	UserRepository        UserRepository
	SessionRepository     SessionRepository
	AccountRepository     AccountRepository
	TransactionRepository TransactionRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories onto the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		SessionRepository:     NewSessionRepository(db, log),
		AccountRepository:     NewAccountRepository(db, log),
		TransactionRepository: NewTransactionRepository(db, log),
	}, nil
}
