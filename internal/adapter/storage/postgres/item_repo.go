package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemRepo implements ports.ItemRepository.
type ItemRepo struct {
	pool Pool
}

// NewItemRepo creates a new ItemRepo.
func NewItemRepo(pool Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

const selectItemColumns = `id, owner_id, title, description, address, starting_price,
	buy_now_price, starts_at, ends_at, is_active, activated_at, created_at`

func scanItem(row pgx.Row) (*domain.AuctionItem, error) {
	var i domain.AuctionItem
	err := row.Scan(&i.ID, &i.OwnerID, &i.Title, &i.Description, &i.Address,
		&i.StartingPrice, &i.BuyNowPrice, &i.StartsAt, &i.EndsAt,
		&i.IsActive, &i.ActivatedAt, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning auction item: %w", err)
	}
	return &i, nil
}

// Create inserts a new item within the caller's transaction.
func (r *ItemRepo) Create(ctx context.Context, tx pgx.Tx, item *domain.AuctionItem) error {
	query := `INSERT INTO auction_items
	          (id, owner_id, title, description, address, starting_price,
	           buy_now_price, starts_at, ends_at, is_active, activated_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := tx.Exec(ctx, query,
		item.ID, item.OwnerID, item.Title, item.Description, item.Address,
		item.StartingPrice, item.BuyNowPrice, item.StartsAt, item.EndsAt,
		item.IsActive, item.ActivatedAt, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting auction item: %w", err)
	}
	return nil
}

// GetByID reads an item without locking. Returns nil, nil when absent.
func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuctionItem, error) {
	query := `SELECT ` + selectItemColumns + ` FROM auction_items WHERE id = $1`
	return scanItem(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the item row until the transaction ends. All bid and
// payment state transitions for an item serialize on this lock.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.AuctionItem, error) {
	query := `SELECT ` + selectItemColumns + ` FROM auction_items WHERE id = $1 FOR UPDATE`
	return scanItem(tx.QueryRow(ctx, query, id))
}

// MarkActive performs the one-shot pending -> active transition. The guard on
// is_active makes a repeated call a no-op at the SQL level too.
func (r *ItemRepo) MarkActive(ctx context.Context, tx pgx.Tx, id uuid.UUID, activatedAt, endsAt time.Time) error {
	query := `UPDATE auction_items
	          SET is_active = TRUE, activated_at = $2, ends_at = $3
	          WHERE id = $1 AND is_active = FALSE`
	_, err := tx.Exec(ctx, query, id, activatedAt, endsAt)
	if err != nil {
		return fmt.Errorf("activating auction item: %w", err)
	}
	return nil
}

// ListOpen returns items whose bidding window has not closed, newest first.
func (r *ItemRepo) ListOpen(ctx context.Context) ([]domain.AuctionItem, error) {
	query := `SELECT ` + selectItemColumns + `
	          FROM auction_items
	          WHERE starts_at <= NOW() AND (ends_at IS NULL OR ends_at > NOW())
	          ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing open items: %w", err)
	}
	defer rows.Close()

	var items []domain.AuctionItem
	for rows.Next() {
		var i domain.AuctionItem
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Title, &i.Description, &i.Address,
			&i.StartingPrice, &i.BuyNowPrice, &i.StartsAt, &i.EndsAt,
			&i.IsActive, &i.ActivatedAt, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning auction item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating auction items: %w", err)
	}
	return items, nil
}
