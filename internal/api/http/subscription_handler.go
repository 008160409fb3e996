package http

import (
	"errors"
	"net/http"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/service"
)

// SubscriptionHandler serves subscription purchase and lifecycle endpoints
type SubscriptionHandler struct {
	subSvc service.SubscriptionService
}

func NewSubscriptionHandler(subSvc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subSvc: subSvc}
}

func (h *SubscriptionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	result, err := h.subSvc.Purchase(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if result.IsExtension {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

func (h *SubscriptionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	sub, err := h.subSvc.GetCurrent(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		writeErrorBody(w, http.StatusNotFound, "no_active_subscription", "no active subscription", nil)
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

type autoRenewalRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *SubscriptionHandler) SetAutoRenewal(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req autoRenewalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		applied bool
		err     error
	)
	if req.Enabled {
		applied, err = h.subSvc.EnableAutoRenewal(r.Context(), userID)
	} else {
		applied, err = h.subSvc.CancelAutoRenewal(r.Context(), userID)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !applied {
		writeErrorBody(w, http.StatusNotFound, "no_active_subscription", "no active subscription", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"is_auto_renewal": req.Enabled,
	})
}
