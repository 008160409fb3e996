package domain

import "time"

type AccessType string

const (
	AccessTypePurchase     AccessType = "PURCHASE"
	AccessTypeSubscription AccessType = "SUBSCRIPTION"
)

// ProductAccess is a durable grant of one product to one user. The
// (user, product) pair is unique; granting is idempotent.
type ProductAccess struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	ProductID  int64      `json:"product_id"`
	AccessType AccessType `json:"access_type"`
	GrantedOn  time.Time  `json:"granted_on"`
}
