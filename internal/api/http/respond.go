package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// errorBody is the structured error payload. Kind is a stable machine-readable
// discriminator; Details carries kind-specific fields like the shortfall.
type errorBody struct {
	Error   string                 `json:"error"`
	Kind    string                 `json:"kind"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeErrorBody(w http.ResponseWriter, status int, kind, message string, details map[string]interface{}) {
	writeJSON(w, status, errorBody{Error: message, Kind: kind, Details: details})
}

// writeDomainError maps known domain errors to HTTP statuses and structured
// payloads; anything unrecognized is a 500 with no internals leaked.
func writeDomainError(w http.ResponseWriter, err error) {
	var insufficientErr *domain.InsufficientFundsError
	var promoErr *domain.InvalidPromoCodeError

	switch {
	case errors.As(err, &insufficientErr):
		writeErrorBody(w, http.StatusPaymentRequired, "insufficient_funds", insufficientErr.Error(), map[string]interface{}{
			"required":  insufficientErr.Required,
			"current":   insufficientErr.Current,
			"shortfall": insufficientErr.Shortfall(),
		})
	case errors.As(err, &promoErr):
		writeErrorBody(w, http.StatusBadRequest, "invalid_promo_code", promoErr.Error(), map[string]interface{}{
			"code":   promoErr.Code,
			"reason": string(promoErr.Reason),
		})
	case errors.Is(err, domain.ErrProductAccessExists):
		writeErrorBody(w, http.StatusConflict, "already_owned", "product already owned", nil)
	case errors.Is(err, domain.ErrNoActiveSubscription):
		writeErrorBody(w, http.StatusNotFound, "no_active_subscription", "no active subscription", nil)
	case errors.Is(err, domain.ErrPayoutNotPending):
		writeErrorBody(w, http.StatusConflict, "payout_not_pending", "payout is not pending", nil)
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", "resource not found", nil)
	default:
		logger.Error("Unhandled request error", "error", err)
		writeErrorBody(w, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return false
	}
	return true
}
