package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Settle commits a checkout as one transaction: order row, item snapshots,
// the purchase debit (skipped for zero-total orders), one entitlement per
// item and the promo use bump. Any failure rolls the whole unit back.
func (r *orderRepository) Settle(ctx context.Context, order *domain.Order) (*domain.LedgerEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (ref, user_id, subtotal_coins, discount_coins, total_coins, subtotal_usd_cents, total_usd_cents, status, promo_code_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		order.Ref, order.UserID, order.SubtotalCoins, order.DiscountCoins, order.TotalCoins,
		order.SubtotalUSDCents, order.TotalUSDCents, order.Status, order.PromoCodeID,
	).Scan(&order.ID, &order.CreatedOn)
	if err != nil {
		return nil, err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, price_coins, price_usd_cents) VALUES ($1, $2, $3, $4) RETURNING id`,
			item.OrderID, item.ProductID, item.PriceCoins, item.PriceUSDCents,
		).Scan(&item.ID)
		if err != nil {
			return nil, err
		}
	}

	// Free orders never touch the ledger.
	var entry *domain.LedgerEntry
	if order.TotalCoins > 0 {
		desc := fmt.Sprintf("Purchase of %d item(s), order %s", len(order.Items), order.Ref)
		entry, err = applyBalanceDelta(ctx, tx, order.UserID, -order.TotalCoins, domain.EntryKindPurchase, desc, domain.Correlation{OrderID: &order.ID})
		if err != nil {
			return nil, err
		}
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO product_access (user_id, product_id, access_type, granted_on) VALUES ($1, $2, $3, NOW())`,
			order.UserID, item.ProductID, domain.AccessTypePurchase,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrProductAccessExists
			}
			return nil, err
		}
	}

	if order.PromoCodeID != nil {
		// The conditional update re-checks the use cap under the row write
		// lock; losing a race on the last use rolls the purchase back.
		res, err := tx.ExecContext(ctx,
			`UPDATE promo_codes SET current_uses = current_uses + 1
			 WHERE id = $1 AND is_active = TRUE AND (max_uses IS NULL OR current_uses < max_uses)`,
			*order.PromoCodeID,
		)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, &domain.InvalidPromoCodeError{Reason: domain.PromoFailMaxUses}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	query := `SELECT id, ref, user_id, subtotal_coins, discount_coins, total_coins, subtotal_usd_cents, total_usd_cents, status, promo_code_id, created_on
	          FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Ref, &o.UserID, &o.SubtotalCoins, &o.DiscountCoins, &o.TotalCoins,
		&o.SubtotalUSDCents, &o.TotalUSDCents, &o.Status, &o.PromoCodeID, &o.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, product_id, price_coins, price_usd_cents FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.PriceCoins, &item.PriceUSDCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Order, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, ref, user_id, subtotal_coins, discount_coins, total_coins, subtotal_usd_cents, total_usd_cents, status, promo_code_id, created_on
	          FROM orders WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Ref, &o.UserID, &o.SubtotalCoins, &o.DiscountCoins, &o.TotalCoins,
			&o.SubtotalUSDCents, &o.TotalUSDCents, &o.Status, &o.PromoCodeID, &o.CreatedOn); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}
