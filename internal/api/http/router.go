package http

import (
	"net/http"

	"coinmarket-backend/internal/security"
	"coinmarket-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles the service dependencies the router needs
type Services struct {
	Ledger       service.LedgerService
	Checkout     service.CheckoutService
	Subscription service.SubscriptionService
	Commission   service.CommissionService
	Webhook      service.PaymentWebhookService
	Notification service.NotificationService
}

// NewRouter wires all HTTP routes. Everything under /api/v1 requires a bearer
// token except the payment webhook, which the processor calls directly.
func NewRouter(services *Services, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	webhookHandler := NewWebhookHandler(services.Webhook)
	router.HandleFunc("/api/v1/payments/webhook", webhookHandler.HandleTopUp).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	walletHandler := NewWalletHandler(services.Ledger)
	api.HandleFunc("/wallet", walletHandler.GetBalance).Methods("GET")
	api.HandleFunc("/wallet/transactions", walletHandler.ListTransactions).Methods("GET")

	checkoutHandler := NewCheckoutHandler(services.Checkout)
	api.HandleFunc("/checkout/preview", checkoutHandler.Preview).Methods("POST")
	api.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	api.HandleFunc("/orders", checkoutHandler.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}", checkoutHandler.GetOrder).Methods("GET")

	subHandler := NewSubscriptionHandler(services.Subscription)
	api.HandleFunc("/subscription", subHandler.Purchase).Methods("POST")
	api.HandleFunc("/subscription", subHandler.GetCurrent).Methods("GET")
	api.HandleFunc("/subscription/auto-renewal", subHandler.SetAutoRenewal).Methods("PUT")

	creatorHandler := NewCreatorHandler(services.Commission)
	api.HandleFunc("/creator/balance", creatorHandler.GetBalance).Methods("GET")
	api.HandleFunc("/creator/transactions", creatorHandler.ListTransactions).Methods("GET")
	api.HandleFunc("/creator/payouts", creatorHandler.RequestPayout).Methods("POST")
	api.HandleFunc("/creator/payouts/{id:[0-9]+}/complete", creatorHandler.CompletePayout).Methods("POST")
	api.HandleFunc("/creator/payouts/{id:[0-9]+}/reject", creatorHandler.RejectPayout).Methods("POST")

	notificationHandler := NewNotificationHandler(services.Notification)
	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods("POST")

	return router
}
