package http

import (
	"context"
	"net/http"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/utils"
)

// auth is an HTTP middleware that enforces session cookie authentication.
//
// It reads the "session" cookie, validates the token via
// [service.SessionService.Validate] (signature, issuer, session row,
// expiry buffer), and on success stores the authenticated user's ID in the
// request context under [utils.UserIDCtxKey] before delegating to the next
// handler.
//
// Every rejection is HTTP 401 with the same generic body; the response
// never reveals whether the cookie was missing, malformed, revoked, or
// expired.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		session, err := h.services.SessionService.Validate(ctx, token)
		if err != nil {
			log.Err(err).Msg("session validation failed")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated user's ID in the context so that
		// downstream handlers can retrieve it without re-validating.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, session.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionTokenFromRequest extracts the raw session token from the request's
// session cookie.
//
// It returns the following sentinel errors:
//   - [ErrMissingSessionCookie] — if no session cookie is present.
//   - [ErrEmptySessionToken] — if the cookie exists but holds no value.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", ErrMissingSessionCookie
	}

	if cookie.Value == "" {
		return "", ErrEmptySessionToken
	}

	return cookie.Value, nil
}
