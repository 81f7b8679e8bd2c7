package postgres

import (
	"context"
	"errors"
	"fmt"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const selectPaymentColumns = `id, item_id, buyer_id, amount, kind, provider,
	provider_ref, status, created_at, processed_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.ItemID, &p.BuyerID, &p.Amount, &p.Kind, &p.Provider,
		&p.ProviderRef, &p.Status, &p.CreatedAt, &p.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning payment: %w", err)
	}
	return &p, nil
}

// Create inserts a payment within the caller's transaction.
func (r *PaymentRepo) Create(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	query := `INSERT INTO payments
	          (id, item_id, buyer_id, amount, kind, provider, provider_ref, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := tx.Exec(ctx, query,
		payment.ID, payment.ItemID, payment.BuyerID, payment.Amount, payment.Kind,
		payment.Provider, payment.ProviderRef, payment.Status, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

// GetByID reads a payment without locking. Returns nil, nil when absent.
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the payment row until the transaction ends, which
// serializes concurrent provider callbacks for the same payment.
func (r *PaymentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	return scanPayment(tx.QueryRow(ctx, query, id))
}

// UpdateStatus moves the payment to a new status. Terminal statuses stamp
// processed_at.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentStatus, providerRef string) error {
	query := `UPDATE payments
	          SET status = $2,
	              provider_ref = $3,
	              processed_at = CASE WHEN $2 IN ('succeeded', 'failed') THEN NOW() ELSE processed_at END
	          WHERE id = $1`
	_, err := tx.Exec(ctx, query, id, status, providerRef)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}
	return nil
}
