package http

import (
	"errors"
	"net/http"

	"github.com/mkarchin/go-bank-ledger/internal/service"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/validators"
	"github.com/mkarchin/go-bank-ledger/models"
)

// errorStatusMap routes service and storage sentinels to HTTP statuses.
// Validation sentinels keep their field-attributable messages; everything
// at 401 or 500 is replaced by generic text before it leaves the server.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrUnsupportedAccountType:  http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrSessionExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNationalIDUnreadable:    http.StatusInternalServerError,

	validators.ErrInvalidEmail:         http.StatusBadRequest,
	validators.ErrPasswordTooShort:     http.StatusBadRequest,
	validators.ErrPasswordTooWeak:      http.StatusBadRequest,
	validators.ErrNationalIDMissing:    http.StatusBadRequest,
	validators.ErrAmountBelowMinimum:   http.StatusBadRequest,
	validators.ErrAmountAboveMaximum:   http.StatusBadRequest,
	validators.ErrUnknownFundingKind:   http.StatusBadRequest,
	validators.ErrInvalidCardNumber:    http.StatusBadRequest,
	validators.ErrUnknownCardBrand:     http.StatusBadRequest,
	validators.ErrInvalidAccountNumber: http.StatusBadRequest,
	validators.ErrInvalidRoutingNumber: http.StatusBadRequest,

	models.ErrInvalidAmount: http.StatusBadRequest,

	store.ErrEmailAlreadyExists:       http.StatusConflict,
	store.ErrAccountTypeAlreadyExists: http.StatusConflict,
	store.ErrAccountInactive:          http.StatusBadRequest,
	store.ErrNoUserWasFound:           http.StatusNotFound,
	store.ErrAccountNotFound:          http.StatusNotFound,
	store.ErrSessionNotFound:          http.StatusUnauthorized,
	store.ErrConsistency:              http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// mapError resolves err to an HTTP status and a response body. Matched 4xx
// sentinels surface their own message (field-attributable validation text);
// 401 and 5xx collapse to the bare status text so authentication and
// internal failures stay opaque.
func mapError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if !errors.Is(err, target) {
			continue
		}
		if status == http.StatusUnauthorized || status >= http.StatusInternalServerError {
			return status, http.StatusText(status)
		}
		return status, target.Error()
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError maps err and writes the plain-text error response.
func writeError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	http.Error(w, message, status)
}
