package ports

import (
	"context"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository defines persistence for the hash chain. The blocks table
// carries a unique index on block index; Insert inside a transaction that
// locked the head via GetLastForUpdate is the only write path.
type LedgerRepository interface {
	// GetLastForUpdate reads the current chain head with a row lock held
	// until the transaction ends. Returns nil, nil on an empty chain.
	GetLastForUpdate(ctx context.Context, tx pgx.Tx) (*domain.LedgerBlock, error)
	GetLast(ctx context.Context) (*domain.LedgerBlock, error)
	Insert(ctx context.Context, tx pgx.Tx, block *domain.LedgerBlock) error
	// ListAll returns the full chain in ascending index order.
	ListAll(ctx context.Context) ([]domain.LedgerBlock, error)
	Count(ctx context.Context) (int64, error)
}

// ItemRepository defines persistence for auction items.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type ItemRepository interface {
	Create(ctx context.Context, tx pgx.Tx, item *domain.AuctionItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AuctionItem, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.AuctionItem, error)
	// MarkActive performs the one-shot pending -> active transition.
	MarkActive(ctx context.Context, tx pgx.Tx, id uuid.UUID, activatedAt, endsAt time.Time) error
	ListOpen(ctx context.Context) ([]domain.AuctionItem, error)
}

// BidRepository defines persistence for bids.
type BidRepository interface {
	Create(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error
	// GetHighest returns the standing bid: max amount, earliest created_at on
	// ties. Returns nil, nil when the item has no bids.
	GetHighest(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error)
	GetHighestTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*domain.Bid, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Bid, error)
	CountDistinctBidders(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int, error)
}

// ParticipantRepository tracks who joined which auction.
type ParticipantRepository interface {
	// Upsert registers the user as a participant; reports whether a new row
	// was created (false = already joined).
	Upsert(ctx context.Context, tx pgx.Tx, p *domain.Participant) (bool, error)
	CountByItem(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int, error)
}

// PaymentRepository defines persistence for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentStatus, providerRef string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
