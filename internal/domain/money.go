package domain

// All internal amounts are integer coins; USD shows up only at the edges
// (catalog prices, legacy promo values, payout display amounts). Conversion
// is integer arithmetic throughout so repeated round trips never drift.

// CoinsFromUSDCents converts a USD cent amount to coins at the given rate
// (coins per whole dollar), truncating toward zero.
func CoinsFromUSDCents(cents, coinsPerUSD int64) int64 {
	return cents * coinsPerUSD / 100
}

// USDCentsFromCoins converts coins back to USD cents for display mirrors.
func USDCentsFromCoins(coins, coinsPerUSD int64) int64 {
	if coinsPerUSD == 0 {
		return 0
	}
	return coins * 100 / coinsPerUSD
}

// PercentShare returns amount*percent/100 floored, the rounding rule shared
// by commissions, referral bonuses and percentage discounts.
func PercentShare(amount, percent int64) int64 {
	return amount * percent / 100
}
