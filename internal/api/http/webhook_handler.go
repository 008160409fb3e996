package http

import (
	"errors"
	"net/http"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/service"
)

// WebhookHandler ingests confirmed payment events from the processor. The
// route is unauthenticated; the processor signs requests at the edge and the
// gateway only sees verified payloads.
type WebhookHandler struct {
	webhookSvc service.PaymentWebhookService
}

func NewWebhookHandler(webhookSvc service.PaymentWebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

type topUpEvent struct {
	EventID            string `json:"event_id"`
	UserID             int64  `json:"user_id"`
	PackID             string `json:"pack_id"`
	AmountPaidUSDCents int64  `json:"amount_paid_usd_cents"`
}

func (h *WebhookHandler) HandleTopUp(w http.ResponseWriter, r *http.Request) {
	var event topUpEvent
	if !decodeBody(w, r, &event) {
		return
	}
	if event.EventID == "" || event.UserID == 0 || event.PackID == "" {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "event_id, user_id and pack_id are required", nil)
		return
	}

	entry, duplicate, err := h.webhookSvc.HandleTopUp(r.Context(), event.EventID, event.UserID, event.PackID, event.AmountPaidUSDCents)
	if errors.Is(err, domain.ErrNotFound) {
		// Unknown pack or user: a 400 tells the processor the event is
		// unprocessable and stops redelivery.
		writeErrorBody(w, http.StatusBadRequest, "unprocessable_event", err.Error(), map[string]interface{}{
			"pack_id": event.PackID,
			"user_id": event.UserID,
		})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Redeliveries must get a 200 so the processor stops retrying.
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry":     entry,
		"duplicate": duplicate,
	})
}
