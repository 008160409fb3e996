package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type creatorRepository struct {
	db *sql.DB
}

func NewCreatorRepository(db *sql.DB) repository.CreatorRepository {
	return &creatorRepository{db: db}
}

// applyCreatorDelta is the creator-pool twin of applyBalanceDelta: locked
// read-modify-write on Account.CreatorBalance plus the paired
// creator_transactions row, inside the caller's transaction.
func applyCreatorDelta(ctx context.Context, tx *sql.Tx, creatorID, delta int64, txType domain.CreatorTransactionType, description string, orderID, productID, payoutID *int64) (*domain.CreatorTransaction, error) {
	var balance int64
	err := tx.QueryRowContext(ctx, `SELECT creator_balance FROM accounts WHERE user_id = $1 FOR UPDATE`, creatorID).Scan(&balance)
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

	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET creator_balance = $1, updated_on = NOW() WHERE user_id = $2`, newBalance, creatorID); err != nil {
		return nil, err
	}

	ct := &domain.CreatorTransaction{
		CreatorID:    creatorID,
		Type:         txType,
		Amount:       delta,
		BalanceAfter: newBalance,
		Description:  description,
		OrderID:      orderID,
		ProductID:    productID,
		PayoutID:     payoutID,
	}
	query := `INSERT INTO creator_transactions (creator_id, type, amount, balance_after, description, order_id, product_id, payout_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query, ct.CreatorID, ct.Type, ct.Amount, ct.BalanceAfter, ct.Description, ct.OrderID, ct.ProductID, ct.PayoutID).
		Scan(&ct.ID, &ct.CreatedOn)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

func (r *creatorRepository) GetBalance(ctx context.Context, creatorID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `SELECT creator_balance FROM accounts WHERE user_id = $1`, creatorID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return balance, err
}

// SettleSale credits the earnings and appends the commission audit row. The
// commission row carries a negative amount but no balance effect: its
// balance_after repeats the snapshot left by the SALE credit, so the fee is
// visible in the trail without moving coins.
func (r *creatorRepository) SettleSale(ctx context.Context, creatorID, earnings, commission int64, orderID, productID int64, description string) (*domain.CreatorTransaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	saleTx, err := applyCreatorDelta(ctx, tx, creatorID, earnings, domain.CreatorTxSale, description, &orderID, &productID, nil)
	if err != nil {
		return nil, err
	}

	if commission > 0 {
		query := `INSERT INTO creator_transactions (creator_id, type, amount, balance_after, description, order_id, product_id, payout_id, created_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, NOW())`
		desc := fmt.Sprintf("Platform commission for order %d", orderID)
		_, err = tx.ExecContext(ctx, query, creatorID, domain.CreatorTxCommission, -commission, saleTx.BalanceAfter, desc, orderID, productID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return saleTx, nil
}

func (r *creatorRepository) ListTransactions(ctx context.Context, creatorID int64, page, pageSize int32) ([]domain.CreatorTransaction, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, creator_id, type, amount, balance_after, COALESCE(description, ''), order_id, product_id, payout_id, created_on
	          FROM creator_transactions WHERE creator_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, creatorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM creator_transactions WHERE creator_id = $1`, creatorID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var txs []domain.CreatorTransaction
	for rows.Next() {
		var ct domain.CreatorTransaction
		if err := rows.Scan(&ct.ID, &ct.CreatorID, &ct.Type, &ct.Amount, &ct.BalanceAfter, &ct.Description, &ct.OrderID, &ct.ProductID, &ct.PayoutID, &ct.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, ct)
	}
	return txs, count, rows.Err()
}

func (r *creatorRepository) CreatePayout(ctx context.Context, payout *domain.CreatorPayout) (*domain.CreatorTransaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `INSERT INTO creator_payouts (ref, creator_id, amount_coins, amount_usd_cents, address, network, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query, payout.Ref, payout.CreatorID, payout.AmountCoins, payout.AmountUSDCents,
		payout.Address, payout.Network, domain.PayoutStatusPending).
		Scan(&payout.ID, &payout.CreatedOn, &payout.UpdatedOn)
	if err != nil {
		return nil, err
	}
	payout.Status = domain.PayoutStatusPending

	desc := fmt.Sprintf("Payout request %s", payout.Ref)
	ptx, err := applyCreatorDelta(ctx, tx, payout.CreatorID, -payout.AmountCoins, domain.CreatorTxPayout, desc, nil, nil, &payout.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ptx, nil
}

const payoutColumns = `id, ref, creator_id, amount_coins, amount_usd_cents, address, network, status, transaction_hash, created_on, updated_on`

func (r *creatorRepository) GetPayout(ctx context.Context, id int64) (*domain.CreatorPayout, error) {
	var p domain.CreatorPayout
	err := r.db.QueryRowContext(ctx, `SELECT `+payoutColumns+` FROM creator_payouts WHERE id = $1`, id).
		Scan(&p.ID, &p.Ref, &p.CreatorID, &p.AmountCoins, &p.AmountUSDCents, &p.Address, &p.Network, &p.Status, &p.TransactionHash, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CompletePayout transitions PENDING → COMPLETED; any other starting state
// is rejected.
func (r *creatorRepository) CompletePayout(ctx context.Context, id int64, txHash string) (*domain.CreatorPayout, error) {
	var p domain.CreatorPayout
	query := `UPDATE creator_payouts SET status = $1, transaction_hash = $2, updated_on = NOW()
	          WHERE id = $3 AND status = $4 RETURNING ` + payoutColumns
	err := r.db.QueryRowContext(ctx, query, domain.PayoutStatusCompleted, txHash, id, domain.PayoutStatusPending).
		Scan(&p.ID, &p.Ref, &p.CreatorID, &p.AmountCoins, &p.AmountUSDCents, &p.Address, &p.Network, &p.Status, &p.TransactionHash, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.payoutTransitionError(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RejectPayout transitions PENDING → REJECTED and refunds the held coins to
// the creator pool with a compensating PAYOUT_REFUND transaction.
func (r *creatorRepository) RejectPayout(ctx context.Context, id int64) (*domain.CreatorPayout, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p domain.CreatorPayout
	query := `UPDATE creator_payouts SET status = $1, updated_on = NOW()
	          WHERE id = $2 AND status = $3 RETURNING ` + payoutColumns
	err = tx.QueryRowContext(ctx, query, domain.PayoutStatusRejected, id, domain.PayoutStatusPending).
		Scan(&p.ID, &p.Ref, &p.CreatorID, &p.AmountCoins, &p.AmountUSDCents, &p.Address, &p.Network, &p.Status, &p.TransactionHash, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.payoutTransitionError(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Refund for rejected payout %s", p.Ref)
	if _, err := applyCreatorDelta(ctx, tx, p.CreatorID, p.AmountCoins, domain.CreatorTxPayoutRefund, desc, nil, nil, &p.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *creatorRepository) payoutTransitionError(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM creator_payouts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrPayoutNotPending
}
