package service

import (
	"github.com/mkarchin/go-bank-ledger/internal/config"
	"github.com/mkarchin/go-bank-ledger/internal/crypto"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/validators"
)

// Services aggregates every business-logic service of the application.
type Services struct {
	AuthService    AuthService
	SessionService SessionService
	LedgerService  LedgerService
}

// NewServices wires all services onto the given storages and configuration.
// The PII cipher derives its key here, once, at startup.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	piiCipher, err := crypto.NewPiiCipher(cfg.Pii.Secret, cfg.Pii.Salt)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			crypto.NewCredentialStore(),
			piiCipher,
			validators.NewSignupValidator(),
			logger,
		),
		SessionService: NewSessionService(storages.SessionRepository, cfg.Auth, logger),
		LedgerService: NewLedgerService(
			storages.AccountRepository,
			storages.TransactionRepository,
			validators.NewFundingValidator(),
			logger,
		),
	}, nil
}
