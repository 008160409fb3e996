package http

import (
	"net/http"
	"strconv"

	"coinmarket-backend/internal/service"

	"github.com/gorilla/mux"
)

// CreatorHandler serves the creator-earnings endpoints
type CreatorHandler struct {
	commissionSvc service.CommissionService
}

func NewCreatorHandler(commissionSvc service.CommissionService) *CreatorHandler {
	return &CreatorHandler{commissionSvc: commissionSvc}
}

func (h *CreatorHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	balance, err := h.commissionSvc.GetCreatorBalance(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"creator_id": userID,
		"balance":    balance,
	})
}

func (h *CreatorHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	page, pageSize := pagination(r)

	txs, total, err := h.commissionSvc.GetCreatorTransactions(r.Context(), userID, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

type payoutRequest struct {
	AmountCoins int64  `json:"amount_coins"`
	Address     string `json:"address"`
	Network     string `json:"network"`
}

func (h *CreatorHandler) RequestPayout(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req payoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AmountCoins <= 0 {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "amount_coins must be positive", nil)
		return
	}
	if req.Address == "" {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "address is required", nil)
		return
	}

	payout, err := h.commissionSvc.RequestPayout(r.Context(), userID, req.AmountCoins, req.Address, req.Network)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payout)
}

func payoutID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "invalid payout id", nil)
		return 0, false
	}
	return id, true
}

type completePayoutRequest struct {
	TransactionHash string `json:"transaction_hash"`
}

func (h *CreatorHandler) CompletePayout(w http.ResponseWriter, r *http.Request) {
	id, ok := payoutID(w, r)
	if !ok {
		return
	}

	var req completePayoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TransactionHash == "" {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "transaction_hash is required", nil)
		return
	}

	payout, err := h.commissionSvc.CompletePayout(r.Context(), id, req.TransactionHash)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}

func (h *CreatorHandler) RejectPayout(w http.ResponseWriter, r *http.Request) {
	id, ok := payoutID(w, r)
	if !ok {
		return
	}

	payout, err := h.commissionSvc.RejectPayout(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}
