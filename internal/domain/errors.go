package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrProductAccessExists    = errors.New("product access already granted")
	ErrDuplicateExternalEvent = errors.New("external event already processed")
	ErrNoActiveSubscription   = errors.New("no active subscription")
	ErrPayoutNotPending       = errors.New("payout is not pending")
)

// InsufficientFundsError is returned by debit operations when the account
// balance cannot cover the requested amount. No mutation happens when it is
// returned.
type InsufficientFundsError struct {
	Required int64 `json:"required"`
	Current  int64 `json:"current"`
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %d coins, have %d", e.Required, e.Current)
}

func (e *InsufficientFundsError) Shortfall() int64 {
	return e.Required - e.Current
}

type PromoFailReason string

const (
	PromoFailInvalid PromoFailReason = "invalid"
	PromoFailExpired PromoFailReason = "expired"
	PromoFailMaxUses PromoFailReason = "max_uses"
)

type InvalidPromoCodeError struct {
	Code   string          `json:"code"`
	Reason PromoFailReason `json:"reason"`
}

func (e *InvalidPromoCodeError) Error() string {
	return fmt.Sprintf("promo code %q rejected: %s", e.Code, e.Reason)
}
