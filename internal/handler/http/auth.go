package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/service"
	"github.com/mkarchin/go-bank-ledger/internal/utils"
	"github.com/mkarchin/go-bank-ledger/models"
)

// register creates a new user and logs them in: on success the response
// carries the session cookie exactly like a login would.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeError(w, err)
		return
	}

	session, err := h.services.SessionService.Create(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("session creation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeSessionCookie(responseCookieWriter{w}, session.Token)
	utils.WriteJSON(w, user, http.StatusCreated)
}

// login verifies credentials and replaces the user's session.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		log.Err(err).Msg("login failed")
		writeError(w, err)
		return
	}

	session, err := h.services.SessionService.Create(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("session creation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeSessionCookie(responseCookieWriter{w}, session.Token)
	utils.WriteJSON(w, user, http.StatusOK)
}

// logout ends the current session. The cookie is cleared on every outcome
// short of a storage failure, even when no session row existed.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := sessionTokenFromRequest(r)
	if err != nil {
		// No token presented at all: nothing to delete, still a
		// successful logout. Unreachable behind the auth middleware, but
		// logout must not depend on middleware ordering to stay safe.
		log.Debug().Err(err).Msg("logout without a session token")
		clearSessionCookie(responseCookieWriter{w})
		utils.WriteJSON(w, models.LogoutResult{Success: true, Message: service.LogoutMessageNoSession}, http.StatusOK)
		return
	}

	result, err := h.services.SessionService.Logout(ctx, token)
	if err != nil {
		log.Err(err).Msg("logout failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	clearSessionCookie(responseCookieWriter{w})
	utils.WriteJSON(w, result, http.StatusOK)
}

// profile returns the authenticated owner's identity view with the national
// ID masked to its last four digits.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	profile, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile read failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
