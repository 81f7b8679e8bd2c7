package postgres

import (
	"context"
	"errors"
	"fmt"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BidRepo implements ports.BidRepository.
type BidRepo struct {
	pool Pool
}

// NewBidRepo creates a new BidRepo.
func NewBidRepo(pool Pool) *BidRepo {
	return &BidRepo{pool: pool}
}

const selectBidColumns = `id, item_id, bidder_id, amount, created_at`

// The standing bid is the highest amount; on equal amounts the earlier bid
// stands.
const highestBidQuery = `SELECT ` + selectBidColumns + `
	FROM bids
	WHERE item_id = $1
	ORDER BY amount DESC, created_at ASC
	LIMIT 1`

func scanBid(row pgx.Row) (*domain.Bid, error) {
	var b domain.Bid
	err := row.Scan(&b.ID, &b.ItemID, &b.BidderID, &b.Amount, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning bid: %w", err)
	}
	return &b, nil
}

// Create inserts a bid within the caller's transaction.
func (r *BidRepo) Create(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	query := `INSERT INTO bids (id, item_id, bidder_id, amount, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.Exec(ctx, query, bid.ID, bid.ItemID, bid.BidderID, bid.Amount, bid.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting bid: %w", err)
	}
	return nil
}

// GetHighest returns the standing bid, nil when the item has none.
func (r *BidRepo) GetHighest(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error) {
	return scanBid(r.pool.QueryRow(ctx, highestBidQuery, itemID))
}

// GetHighestTx is GetHighest inside the caller's transaction.
func (r *BidRepo) GetHighestTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*domain.Bid, error) {
	return scanBid(tx.QueryRow(ctx, highestBidQuery, itemID))
}

// ListByItem returns an item's bids, newest first.
func (r *BidRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Bid, error) {
	query := `SELECT ` + selectBidColumns + `
	          FROM bids
	          WHERE item_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing bids: %w", err)
	}
	defer rows.Close()

	var bids []domain.Bid
	for rows.Next() {
		var b domain.Bid
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BidderID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bids: %w", err)
	}
	return bids, nil
}

// CountDistinctBidders counts how many different users have bid on the item.
func (r *BidRepo) CountDistinctBidders(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(DISTINCT bidder_id) FROM bids WHERE item_id = $1`, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting distinct bidders: %w", err)
	}
	return count, nil
}
