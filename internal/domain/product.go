package domain

// Product is a read-only snapshot from the catalog collaborator; the engine
// never writes products. Prices are USD cents, converted to coins at
// checkout time.
type Product struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	PriceUSDCents     int64   `json:"price_usd_cents"`
	SalePriceUSDCents *int64  `json:"sale_price_usd_cents,omitempty"`
	IsPremium         bool    `json:"is_premium"`
	IsFree            bool    `json:"is_free"`
	AuthorID          *int64  `json:"author_id,omitempty"`
}

// EffectivePriceUSDCents returns the sale price when one is set, otherwise
// the list price. Free products always price at zero.
func (p *Product) EffectivePriceUSDCents() int64 {
	if p.IsFree {
		return 0
	}
	if p.SalePriceUSDCents != nil {
		return *p.SalePriceUSDCents
	}
	return p.PriceUSDCents
}
