package domain

import "time"

type EntryKind string

const (
	EntryKindDeposit      EntryKind = "DEPOSIT"
	EntryKindPurchase     EntryKind = "PURCHASE"
	EntryKindSubscription EntryKind = "SUBSCRIPTION"
	EntryKindBonus        EntryKind = "BONUS"
	EntryKindReferral     EntryKind = "REFERRAL"
	EntryKindRefund       EntryKind = "REFUND"
	EntryKindPayout       EntryKind = "PAYOUT"
	// SALE and COMMISSION rows are written against the creator pool; see
	// CreatorTransactionType for the mirror enum.
	EntryKindSale         EntryKind = "SALE"
	EntryKindCommission   EntryKind = "COMMISSION"
	EntryKindPayoutRefund EntryKind = "PAYOUT_REFUND"
)

// Account holds the two coin pools for one user. Balances are mutated only
// through the ledger repository primitives; at any point balance equals the
// sum of all entry amounts for the account.
type Account struct {
	UserID         int64     `json:"user_id"`
	Balance        int64     `json:"balance"`
	CreatorBalance int64     `json:"creator_balance"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// LedgerEntry is one immutable balance change. Amount is signed, negative
// for debits. BalanceAfter snapshots the account balance immediately after
// the change was applied.
type LedgerEntry struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Kind           EntryKind `json:"kind"`
	Amount         int64     `json:"amount"`
	BalanceAfter   int64     `json:"balance_after"`
	Description    string    `json:"description"`
	OrderID        *int64    `json:"order_id,omitempty"`
	SubscriptionID *int64    `json:"subscription_id,omitempty"`
	PayoutID       *int64    `json:"payout_id,omitempty"`
	ExternalID     *string   `json:"external_id,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}

// Correlation carries the optional ids linking a ledger entry back to the
// operation that produced it.
type Correlation struct {
	OrderID        *int64
	SubscriptionID *int64
	PayoutID       *int64
	ExternalID     *string
}
