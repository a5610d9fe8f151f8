package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/utils"
	"github.com/mkarchin/go-bank-ledger/models"
)

// openAccount opens a new account for the authenticated user.
func (h *Handler) openAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.LedgerService.OpenAccount(ctx, userID, req)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("account opening failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusCreated)
}

// listAccounts returns every account of the authenticated user.
func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accounts, err := h.services.LedgerService.ListAccounts(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("account listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, accounts, http.StatusOK)
}

// getAccount returns one account of the authenticated user.
func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accountID, err := accountIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid account id", http.StatusBadRequest)
		return
	}

	account, err := h.services.LedgerService.GetAccount(ctx, userID, accountID)
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("account lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

// fund applies a deposit to one of the authenticated user's accounts.
func (h *Handler) fund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accountID, err := accountIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid account id", http.StatusBadRequest)
		return
	}

	var req models.FundRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.LedgerService.Fund(ctx, userID, accountID, req)
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("funding failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// transactions returns one page of an account's transaction history.
func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accountID, err := accountIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid account id", http.StatusBadRequest)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)

	history, err := h.services.LedgerService.Transactions(ctx, userID, accountID, page, limit)
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("transaction history read failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, history, http.StatusOK)
}

// accountIDFromURL parses the {accountID} URL parameter.
func accountIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or unparseable. Range clamping happens in the service.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return value
}
