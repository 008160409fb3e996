package repository

import (
	"context"
	"time"

	"coinmarket-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Account, error)
}

// LedgerRepository owns all mutations of Account.Balance. Credit and Debit
// run as one transaction that locks the account row, so concurrent
// operations on the same account serialize. Debit returns
// *domain.InsufficientFundsError without mutating anything when the balance
// cannot cover the amount.
type LedgerRepository interface {
	Credit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error)
	Debit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	ListEntries(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LedgerEntry, int64, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.LedgerEntry, error)
}

// OrderRepository settles checkouts. Settle commits the debit, the order
// with its items, one entitlement per item and the promo use bump as a
// single transaction; a zero-total order skips the ledger entirely and
// returns a nil entry.
type OrderRepository interface {
	Settle(ctx context.Context, order *domain.Order) (*domain.LedgerEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Order, int64, error)
}

type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
}

type EntitlementRepository interface {
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Grant(ctx context.Context, access *domain.ProductAccess) error
	ListByUser(ctx context.Context, userID int64) ([]domain.ProductAccess, error)
}

// ProductRepository reads catalog snapshots; the engine never writes them.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	ListPremium(ctx context.Context) ([]domain.Product, error)
}

// UserRepository reads identity snapshots (referrer link, creator flag).
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type SubscriptionRepository interface {
	GetActiveByUser(ctx context.Context, userID int64) (*domain.Subscription, error)
	// Purchase debits the price, inserts the subscription row and grants the
	// premium entitlements in one transaction. Fills sub.ID.
	Purchase(ctx context.Context, sub *domain.Subscription, price int64, premiumProductIDs []int64) (*domain.LedgerEntry, error)
	// Extend debits the price and pushes end_date forward by extendBy in one
	// transaction. Returns the new end date.
	Extend(ctx context.Context, subID, userID, price int64, extendBy time.Duration) (*domain.LedgerEntry, time.Time, error)
	SetAutoRenewal(ctx context.Context, subID int64, enabled bool) error
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
	ListDueForRenewal(ctx context.Context, cutoff time.Time) ([]domain.Subscription, error)
}

// CreatorRepository owns the creator-earnings pool, with the same row-lock
// discipline as LedgerRepository but against Account.CreatorBalance.
type CreatorRepository interface {
	GetBalance(ctx context.Context, creatorID int64) (int64, error)
	// SettleSale credits earnings and appends the paired commission audit row
	// in one transaction.
	SettleSale(ctx context.Context, creatorID, earnings, commission int64, orderID, productID int64, description string) (*domain.CreatorTransaction, error)
	ListTransactions(ctx context.Context, creatorID int64, page, pageSize int32) ([]domain.CreatorTransaction, int64, error)
	// CreatePayout debits the creator pool and inserts the pending payout row
	// in one transaction. Fills payout.ID.
	CreatePayout(ctx context.Context, payout *domain.CreatorPayout) (*domain.CreatorTransaction, error)
	GetPayout(ctx context.Context, id int64) (*domain.CreatorPayout, error)
	CompletePayout(ctx context.Context, id int64, txHash string) (*domain.CreatorPayout, error)
	// RejectPayout refunds the coins to the creator pool and records the
	// compensating PAYOUT_REFUND transaction.
	RejectPayout(ctx context.Context, id int64) (*domain.CreatorPayout, error)
}

type ReferralRepository interface {
	Create(ctx context.Context, bonus *domain.ReferralBonus) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
