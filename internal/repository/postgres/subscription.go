package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, start_date, end_date, status, is_auto_renewal, created_on, updated_on`

func (r *subscriptionRepository) GetActiveByUser(ctx context.Context, userID int64) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
	          WHERE user_id = $1 AND status = $2 ORDER BY end_date DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID, domain.SubscriptionStatusActive)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Purchase debits the price, inserts the subscription row and grants the
// premium entitlements as one unit. A shortfall rolls everything back before
// anything becomes visible.
func (r *subscriptionRepository) Purchase(ctx context.Context, sub *domain.Subscription, price int64, premiumProductIDs []int64) (*domain.LedgerEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `INSERT INTO subscriptions (user_id, start_date, end_date, status, is_auto_renewal, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query, sub.UserID, sub.StartDate, sub.EndDate, sub.Status, sub.IsAutoRenewal).
		Scan(&sub.ID, &sub.CreatedOn, &sub.UpdatedOn)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Subscription until %s", sub.EndDate.Format("2006-01-02"))
	entry, err := applyBalanceDelta(ctx, tx, sub.UserID, -price, domain.EntryKindSubscription, desc, domain.Correlation{SubscriptionID: &sub.ID})
	if err != nil {
		return nil, err
	}

	// Premium grants are idempotent; the user may own some of these already.
	for _, productID := range premiumProductIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO product_access (user_id, product_id, access_type, granted_on) VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (user_id, product_id) DO NOTHING`,
			sub.UserID, productID, domain.AccessTypeSubscription,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Extend debits the price and pushes end_date forward from its current
// value, as one unit. Used by both user-initiated extension purchases and
// the auto-renewal sweep.
func (r *subscriptionRepository) Extend(ctx context.Context, subID, userID, price int64, extendBy time.Duration) (*domain.LedgerEntry, time.Time, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer tx.Rollback()

	entry, err := applyBalanceDelta(ctx, tx, userID, -price, domain.EntryKindSubscription, "Subscription renewal", domain.Correlation{SubscriptionID: &subID})
	if err != nil {
		return nil, time.Time{}, err
	}

	var newEndDate time.Time
	query := `UPDATE subscriptions SET end_date = end_date + make_interval(hours => $1), updated_on = NOW()
	          WHERE id = $2 AND user_id = $3 AND status = $4 RETURNING end_date`
	err = tx.QueryRowContext(ctx, query, int64(extendBy.Hours()), subID, userID, domain.SubscriptionStatusActive).Scan(&newEndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, domain.ErrNoActiveSubscription
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	if err := tx.Commit(); err != nil {
		return nil, time.Time{}, err
	}
	return entry, newEndDate, nil
}

func (r *subscriptionRepository) SetAutoRenewal(ctx context.Context, subID int64, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET is_auto_renewal = $1, updated_on = NOW() WHERE id = $2`, enabled, subID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExpireLapsed is idempotent: already-expired rows no longer match.
func (r *subscriptionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1, updated_on = NOW() WHERE status = $2 AND end_date <= $3`,
		domain.SubscriptionStatusExpired, domain.SubscriptionStatusActive, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *subscriptionRepository) ListDueForRenewal(ctx context.Context, cutoff time.Time) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
	          WHERE status = $1 AND is_auto_renewal = TRUE AND end_date <= $2 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.SubscriptionStatusActive, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartDate, &s.EndDate, &s.Status, &s.IsAutoRenewal, &s.CreatedOn, &s.UpdatedOn); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.StartDate, &s.EndDate, &s.Status, &s.IsAutoRenewal, &s.CreatedOn, &s.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
