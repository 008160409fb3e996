package postgres

import (
	"context"
	"database/sql"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type entitlementRepository struct {
	db *sql.DB
}

func NewEntitlementRepository(db *sql.DB) repository.EntitlementRepository {
	return &entitlementRepository{db: db}
}

func (r *entitlementRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM product_access WHERE user_id = $1 AND product_id = $2)`
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&exists)
	return exists, err
}

// Grant is idempotent: an existing grant is left untouched.
func (r *entitlementRepository) Grant(ctx context.Context, access *domain.ProductAccess) error {
	query := `INSERT INTO product_access (user_id, product_id, access_type, granted_on)
	          VALUES ($1, $2, $3, NOW())
	          ON CONFLICT (user_id, product_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, access.UserID, access.ProductID, access.AccessType)
	return err
}

func (r *entitlementRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ProductAccess, error) {
	query := `SELECT id, user_id, product_id, access_type, granted_on FROM product_access WHERE user_id = $1 ORDER BY granted_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.ProductAccess
	for rows.Next() {
		var a domain.ProductAccess
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProductID, &a.AccessType, &a.GrantedOn); err != nil {
			return nil, err
		}
		grants = append(grants, a)
	}
	return grants, rows.Err()
}
