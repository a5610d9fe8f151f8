package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Authentication endpoints are open; everything
// else goes through the session cookie middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind the session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.profile)

		r.Post("/api/accounts", h.openAccount)
		r.Get("/api/accounts", h.listAccounts)
		r.Get("/api/accounts/{accountID}", h.getAccount)
		r.Post("/api/accounts/{accountID}/fund", h.fund)
		r.Get("/api/accounts/{accountID}/transactions", h.transactions)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
