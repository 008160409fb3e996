package domain

import "time"

type CreatorTransactionType string

const (
	CreatorTxSale         CreatorTransactionType = "SALE"
	CreatorTxCommission   CreatorTransactionType = "COMMISSION"
	CreatorTxPayout       CreatorTransactionType = "PAYOUT"
	CreatorTxPayoutRefund CreatorTransactionType = "PAYOUT_REFUND"
)

// CreatorTransaction mirrors LedgerEntry for the creator-earnings pool.
// COMMISSION rows are audit-only: they record the platform fee taken from a
// sale and carry no balance effect (BalanceAfter repeats the SALE snapshot).
type CreatorTransaction struct {
	ID           int64                  `json:"id"`
	CreatorID    int64                  `json:"creator_id"`
	Type         CreatorTransactionType `json:"type"`
	Amount       int64                  `json:"amount"`
	BalanceAfter int64                  `json:"balance_after"`
	Description  string                 `json:"description"`
	OrderID      *int64                 `json:"order_id,omitempty"`
	ProductID    *int64                 `json:"product_id,omitempty"`
	PayoutID     *int64                 `json:"payout_id,omitempty"`
	CreatedOn    time.Time              `json:"created_on"`
}

type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "PENDING"
	PayoutStatusCompleted PayoutStatus = "COMPLETED"
	PayoutStatusRejected  PayoutStatus = "REJECTED"
)

// CreatorPayout. COMPLETED and REJECTED are terminal and reachable only
// from PENDING.
type CreatorPayout struct {
	ID              int64        `json:"id"`
	Ref             string       `json:"ref"`
	CreatorID       int64        `json:"creator_id"`
	AmountCoins     int64        `json:"amount_coins"`
	AmountUSDCents  int64        `json:"amount_usd_cents"`
	Address         string       `json:"address"`
	Network         string       `json:"network"`
	Status          PayoutStatus `json:"status"`
	TransactionHash *string      `json:"transaction_hash,omitempty"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}
