package handler

import (
	"github.com/mkarchin/go-bank-ledger/internal/config"
	"github.com/mkarchin/go-bank-ledger/internal/handler/http"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/service"
)

// Handlers aggregates the transport handlers of the application. The only
// transport is HTTP; the session cookie contract does not map onto anything
// else.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers wires the transport handlers onto the services.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
