package service

import (
	"context"

	"coinmarket-backend/internal/domain"
)

type LedgerService interface {
	Credit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error)
	Debit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetEntries(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LedgerEntry, int64, error)
}

// DiscountQuote is the outcome of resolving a promo code against a subtotal.
type DiscountQuote struct {
	DiscountCoins int64  `json:"discount_coins"`
	PromoID       *int64 `json:"promo_id,omitempty"`
}

type CheckoutResult struct {
	Order      *domain.Order `json:"order"`
	CoinsSpent int64         `json:"coins_spent"`
	NewBalance int64         `json:"new_balance"`
}

type CheckoutService interface {
	PreviewDiscount(ctx context.Context, userID, subtotalCoins int64, promoCode string) (*DiscountQuote, error)
	Checkout(ctx context.Context, userID int64, productIDs []int64, promoCode string) (*CheckoutResult, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Order, int64, error)
}

type SubscriptionPurchaseResult struct {
	Subscription *domain.Subscription `json:"subscription"`
	CoinsSpent   int64                `json:"coins_spent"`
	NewBalance   int64                `json:"new_balance"`
	IsExtension  bool                 `json:"is_extension"`
}

type SubscriptionService interface {
	Purchase(ctx context.Context, userID int64) (*SubscriptionPurchaseResult, error)
	GetCurrent(ctx context.Context, userID int64) (*domain.Subscription, error)
	// CancelAutoRenewal and EnableAutoRenewal report false when the user has
	// no active subscription; neither touches status or end date.
	CancelAutoRenewal(ctx context.Context, userID int64) (bool, error)
	EnableAutoRenewal(ctx context.Context, userID int64) (bool, error)
	CheckAndExpire(ctx context.Context) (int64, error)
	ProcessAutoRenewals(ctx context.Context) (*domain.RenewalReport, error)
}

type CommissionService interface {
	// SettleSale splits a completed sale into creator earnings and platform
	// commission. Returns (nil, nil) when the product has no approved-creator
	// author.
	SettleSale(ctx context.Context, productID, orderID, saleCoins int64) (*domain.CreatorTransaction, error)
	GetCreatorBalance(ctx context.Context, creatorID int64) (int64, error)
	GetCreatorTransactions(ctx context.Context, creatorID int64, page, pageSize int32) ([]domain.CreatorTransaction, int64, error)
	RequestPayout(ctx context.Context, creatorID, amountCoins int64, address, network string) (*domain.CreatorPayout, error)
	CompletePayout(ctx context.Context, payoutID int64, txHash string) (*domain.CreatorPayout, error)
	RejectPayout(ctx context.Context, payoutID int64) (*domain.CreatorPayout, error)
}

type PaymentWebhookService interface {
	// HandleTopUp is idempotent on externalEventID: a redelivered event
	// returns the original entry and duplicate=true without a second credit.
	HandleTopUp(ctx context.Context, externalEventID string, userID int64, packID string, amountPaidUSDCents int64) (entry *domain.LedgerEntry, duplicate bool, err error)
}

// NotificationService is a fire-and-forget side channel: Notify swallows and
// logs its own failures so it can run after a committed mutation without
// ever affecting it.
type NotificationService interface {
	Notify(ctx context.Context, userID int64, title, message string, attrs map[string]string)
	GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type EmailService interface {
	SendLowBalanceNotice(ctx context.Context, email, name string, requiredCoins, currentCoins int64) error
	SendPurchaseReceipt(ctx context.Context, email, name, orderRef string, totalCoins int64) error
	SendPayoutStatusNotice(ctx context.Context, email, name, payoutRef string, status domain.PayoutStatus) error
}
