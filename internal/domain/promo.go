package domain

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// PromoCode. Value is a percent for PERCENTAGE codes and legacy USD cents
// for FIXED codes; fixed codes convert to coins at checkout time with the
// configured rate. CurrentUses only ever increases.
type PromoCode struct {
	ID           int64        `json:"id"`
	Code         string       `json:"code"`
	DiscountType DiscountType `json:"discount_type"`
	Value        int64        `json:"value"`
	MaxUses      *int64       `json:"max_uses,omitempty"`
	CurrentUses  int64        `json:"current_uses"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	IsActive     bool         `json:"is_active"`
}

// Usable reports whether the code can still be applied at the given time.
// The use-cap check here is advisory; the settlement transaction re-checks
// it under the row lock.
func (p *PromoCode) Usable(now time.Time) *InvalidPromoCodeError {
	if !p.IsActive {
		return &InvalidPromoCodeError{Code: p.Code, Reason: PromoFailInvalid}
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(now) {
		return &InvalidPromoCodeError{Code: p.Code, Reason: PromoFailExpired}
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return &InvalidPromoCodeError{Code: p.Code, Reason: PromoFailMaxUses}
	}
	return nil
}
