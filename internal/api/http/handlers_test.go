package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/security"
	"coinmarket-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret-that-is-at-least-32-chars!"

// MockCheckoutService
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) PreviewDiscount(ctx context.Context, userID, subtotalCoins int64, promoCode string) (*service.DiscountQuote, error) {
	args := m.Called(ctx, userID, subtotalCoins, promoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DiscountQuote), args.Error(1)
}
func (m *MockCheckoutService) Checkout(ctx context.Context, userID int64, productIDs []int64, promoCode string) (*service.CheckoutResult, error) {
	args := m.Called(ctx, userID, productIDs, promoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}
func (m *MockCheckoutService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockCheckoutService) ListOrders(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

// MockWebhookService
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) HandleTopUp(ctx context.Context, externalEventID string, userID int64, packID string, amountPaidUSDCents int64) (*domain.LedgerEntry, bool, error) {
	args := m.Called(ctx, externalEventID, userID, packID, amountPaidUSDCents)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Bool(1), args.Error(2)
}

func authedRequest(t *testing.T, tokens security.TokenManager, method, target string, body []byte) *http.Request {
	t.Helper()
	token, err := tokens.GenerateToken(1, "user@test.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)

	t.Run("Success", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		checkoutSvc.On("Checkout", mock.Anything, int64(1), []int64{10, 11}, "SAVE10").
			Return(&service.CheckoutResult{
				Order:      &domain.Order{ID: 100, TotalCoins: 495, Status: domain.OrderStatusPaid},
				CoinsSpent: 495,
				NewBalance: 505,
			}, nil)

		router := NewRouter(&Services{Checkout: checkoutSvc}, tokens)
		body, _ := json.Marshal(checkoutRequest{ProductIDs: []int64{10, 11}, PromoCode: "SAVE10"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, tokens, http.MethodPost, "/api/v1/checkout", body))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var result service.CheckoutResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, int64(505), result.NewBalance)
	})

	t.Run("InsufficientFundsPayload", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		checkoutSvc.On("Checkout", mock.Anything, int64(1), []int64{10}, "").
			Return(nil, &domain.InsufficientFundsError{Required: 100, Current: 50})

		router := NewRouter(&Services{Checkout: checkoutSvc}, tokens)
		body, _ := json.Marshal(checkoutRequest{ProductIDs: []int64{10}})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, tokens, http.MethodPost, "/api/v1/checkout", body))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		var payload errorBody
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "insufficient_funds", payload.Kind)
		assert.Equal(t, float64(50), payload.Details["shortfall"])
	})

	t.Run("RejectsMissingToken", func(t *testing.T) {
		router := NewRouter(&Services{Checkout: new(MockCheckoutService)}, tokens)
		body, _ := json.Marshal(checkoutRequest{ProductIDs: []int64{10}})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RejectsEmptyCart", func(t *testing.T) {
		router := NewRouter(&Services{Checkout: new(MockCheckoutService)}, tokens)
		body, _ := json.Marshal(checkoutRequest{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, tokens, http.MethodPost, "/api/v1/checkout", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWebhookHandler_HandleTopUp(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)

	t.Run("NoAuthRequired", func(t *testing.T) {
		webhookSvc := new(MockWebhookService)
		webhookSvc.On("HandleTopUp", mock.Anything, "evt_1", int64(1), "starter", int64(499)).
			Return(&domain.LedgerEntry{ID: 1, Amount: 500, BalanceAfter: 500}, false, nil)

		router := NewRouter(&Services{Webhook: webhookSvc}, tokens)
		body, _ := json.Marshal(topUpEvent{EventID: "evt_1", UserID: 1, PackID: "starter", AmountPaidUSDCents: 499})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("DuplicateStillReturns200", func(t *testing.T) {
		webhookSvc := new(MockWebhookService)
		webhookSvc.On("HandleTopUp", mock.Anything, "evt_1", int64(1), "starter", int64(499)).
			Return(&domain.LedgerEntry{ID: 1, Amount: 500}, true, nil)

		router := NewRouter(&Services{Webhook: webhookSvc}, tokens)
		body, _ := json.Marshal(topUpEvent{EventID: "evt_1", UserID: 1, PackID: "starter", AmountPaidUSDCents: 499})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, true, payload["duplicate"])
	})

	t.Run("UnknownPackIs400", func(t *testing.T) {
		webhookSvc := new(MockWebhookService)
		webhookSvc.On("HandleTopUp", mock.Anything, "evt_1", int64(1), "mega", int64(9999)).
			Return(nil, false, domain.ErrNotFound)

		router := NewRouter(&Services{Webhook: webhookSvc}, tokens)
		body, _ := json.Marshal(topUpEvent{EventID: "evt_1", UserID: 1, PackID: "mega", AmountPaidUSDCents: 9999})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		router := NewRouter(&Services{Webhook: new(MockWebhookService)}, tokens)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader([]byte("{"))))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
