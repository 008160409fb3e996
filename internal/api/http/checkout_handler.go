package http

import (
	"net/http"
	"strconv"

	"coinmarket-backend/internal/service"

	"github.com/gorilla/mux"
)

// CheckoutHandler serves cart settlement and order history
type CheckoutHandler struct {
	checkoutSvc service.CheckoutService
}

func NewCheckoutHandler(checkoutSvc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

type previewRequest struct {
	SubtotalCoins int64  `json:"subtotal_coins"`
	PromoCode     string `json:"promo_code"`
}

func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req previewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SubtotalCoins < 0 {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "subtotal_coins must not be negative", nil)
		return
	}

	quote, err := h.checkoutSvc.PreviewDiscount(r.Context(), userID, req.SubtotalCoins, req.PromoCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type checkoutRequest struct {
	ProductIDs []int64 `json:"product_ids"`
	PromoCode  string  `json:"promo_code"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.ProductIDs) == 0 {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "product_ids must not be empty", nil)
		return
	}

	result, err := h.checkoutSvc.Checkout(r.Context(), userID, req.ProductIDs, req.PromoCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "invalid order id", nil)
		return
	}

	order, err := h.checkoutSvc.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	page, pageSize := pagination(r)

	orders, total, err := h.checkoutSvc.ListOrders(r.Context(), userID, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":    orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
