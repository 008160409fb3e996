package postgres

import (
	"context"
	"database/sql"
	"errors"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// applyBalanceDelta performs the locked read-modify-write on the main coin
// pool and appends the paired ledger entry, all inside the caller's
// transaction. The row lock is held until the transaction commits, so
// concurrent mutations of the same account serialize.
func applyBalanceDelta(ctx context.Context, tx *sql.Tx, userID, delta int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	var balance int64
	err := tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	newBalance := balance + delta
	if newBalance < 0 {
		return nil, &domain.InsufficientFundsError{Required: -delta, Current: balance}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = $1, updated_on = NOW() WHERE user_id = $2`, newBalance, userID); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		UserID:         userID,
		Kind:           kind,
		Amount:         delta,
		BalanceAfter:   newBalance,
		Description:    description,
		OrderID:        corr.OrderID,
		SubscriptionID: corr.SubscriptionID,
		PayoutID:       corr.PayoutID,
		ExternalID:     corr.ExternalID,
	}
	query := `INSERT INTO ledger_entries (user_id, kind, amount, balance_after, description, order_id, subscription_id, payout_id, external_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		entry.UserID, entry.Kind, entry.Amount, entry.BalanceAfter, entry.Description,
		entry.OrderID, entry.SubscriptionID, entry.PayoutID, entry.ExternalID,
	).Scan(&entry.ID, &entry.CreatedOn)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	return r.apply(ctx, userID, amount, kind, description, corr)
}

func (r *ledgerRepository) Debit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	return r.apply(ctx, userID, -amount, kind, description, corr)
}

func (r *ledgerRepository) apply(ctx context.Context, userID, delta int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := applyBalanceDelta(ctx, tx, userID, delta, kind, description, corr)
	if err != nil {
		// The unique index on external_id is the backstop for webhook
		// redelivery racing past the dedupe lookup.
		if isUniqueViolation(err) && corr.ExternalID != nil {
			return nil, domain.ErrDuplicateExternalEvent
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ledgerRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	query := `SELECT balance FROM accounts WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return balance, err
}

func (r *ledgerRepository) ListEntries(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LedgerEntry, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, kind, amount, balance_after, COALESCE(description, ''), order_id, subscription_id, payout_id, external_id, created_on
	          FROM ledger_entries WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int64
	countQuery := `SELECT count(*) FROM ledger_entries WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.BalanceAfter, &e.Description,
			&e.OrderID, &e.SubscriptionID, &e.PayoutID, &e.ExternalID, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}

func (r *ledgerRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	query := `SELECT id, user_id, kind, amount, balance_after, COALESCE(description, ''), order_id, subscription_id, payout_id, external_id, created_on
	          FROM ledger_entries WHERE external_id = $1`
	err := r.db.QueryRowContext(ctx, query, externalID).Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.BalanceAfter, &e.Description,
		&e.OrderID, &e.SubscriptionID, &e.PayoutID, &e.ExternalID, &e.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
