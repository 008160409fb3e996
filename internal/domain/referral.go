package domain

import "time"

// ReferralBonus links a referrer credit back to the purchase that earned it.
type ReferralBonus struct {
	ID          int64     `json:"id"`
	ReferrerID  int64     `json:"referrer_id"`
	ReferredID  int64     `json:"referred_id"`
	OrderID     int64     `json:"order_id"`
	AmountCoins int64     `json:"amount_coins"`
	CreatedOn   time.Time `json:"created_on"`
}
