package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Order settlement is synchronous: an order row exists only once the debit
// committed (or the total was zero), so the primary flow writes PAID rows.
type Order struct {
	ID               int64       `json:"id"`
	Ref              string      `json:"ref"`
	UserID           int64       `json:"user_id"`
	SubtotalCoins    int64       `json:"subtotal_coins"`
	DiscountCoins    int64       `json:"discount_coins"`
	TotalCoins       int64       `json:"total_coins"`
	SubtotalUSDCents int64       `json:"subtotal_usd_cents"`
	TotalUSDCents    int64       `json:"total_usd_cents"`
	Status           OrderStatus `json:"status"`
	PromoCodeID      *int64      `json:"promo_code_id,omitempty"`
	Items            []OrderItem `json:"items,omitempty"`
	CreatedOn        time.Time   `json:"created_on"`
}

// OrderItem freezes the price the buyer actually paid; later catalog price
// changes never touch it.
type OrderItem struct {
	ID            int64 `json:"id"`
	OrderID       int64 `json:"order_id"`
	ProductID     int64 `json:"product_id"`
	PriceCoins    int64 `json:"price_coins"`
	PriceUSDCents int64 `json:"price_usd_cents"`
}
