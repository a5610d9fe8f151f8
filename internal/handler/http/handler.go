package http

import (
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/service"
)

// Handler carries the service dependencies of the HTTP transport.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler over the given services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
