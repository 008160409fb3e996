package postgres

import (
	"context"
	"database/sql"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type referralRepository struct {
	db *sql.DB
}

func NewReferralRepository(db *sql.DB) repository.ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, bonus *domain.ReferralBonus) error {
	query := `INSERT INTO referral_bonuses (referrer_id, referred_id, order_id, amount_coins, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, bonus.ReferrerID, bonus.ReferredID, bonus.OrderID, bonus.AmountCoins).
		Scan(&bonus.ID, &bonus.CreatedOn)
}
