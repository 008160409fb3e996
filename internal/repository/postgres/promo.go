package postgres

import (
	"context"
	"database/sql"
	"errors"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type promoRepository struct {
	db *sql.DB
}

func NewPromoRepository(db *sql.DB) repository.PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	query := `SELECT id, code, discount_type, value, max_uses, current_uses, expires_at, is_active
	          FROM promo_codes WHERE UPPER(code) = UPPER($1)`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&p.ID, &p.Code, &p.DiscountType, &p.Value, &p.MaxUses, &p.CurrentUses, &p.ExpiresAt, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
