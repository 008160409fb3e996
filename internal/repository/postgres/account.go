package postgres

import (
	"context"
	"database/sql"
	"errors"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, userID int64) error {
	query := `INSERT INTO accounts (user_id, balance, creator_balance, created_on, updated_on)
	          VALUES ($1, 0, 0, NOW(), NOW()) ON CONFLICT (user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	var acc domain.Account
	query := `SELECT user_id, balance, creator_balance, created_on, updated_on FROM accounts WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&acc.UserID, &acc.Balance, &acc.CreatorBalance, &acc.CreatedOn, &acc.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
