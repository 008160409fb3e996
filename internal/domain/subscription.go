package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "PENDING" // legacy, unused by the primary flow
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription. Cancelling only turns auto-renewal off; the row stays ACTIVE
// until EndDate passes and the expiry sweep moves it to EXPIRED. At most one
// ACTIVE row with a future EndDate exists per user.
type Subscription struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"user_id"`
	StartDate     time.Time          `json:"start_date"`
	EndDate       time.Time          `json:"end_date"`
	Status        SubscriptionStatus `json:"status"`
	IsAutoRenewal bool               `json:"is_auto_renewal"`
	CreatedOn     time.Time          `json:"created_on"`
	UpdatedOn     time.Time          `json:"updated_on"`
}

func (s *Subscription) Lapsed(now time.Time) bool {
	return !s.EndDate.After(now)
}

// RenewalReport is the outcome tally of one auto-renewal sweep.
type RenewalReport struct {
	Renewed int `json:"renewed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
