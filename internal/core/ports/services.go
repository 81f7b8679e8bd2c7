package ports

import (
	"context"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ChainHasher computes the deterministic digest of a block's canonical
// fields. Pure function: no state, no I/O.
type ChainHasher interface {
	Digest(index int64, timestamp time.Time, eventType domain.EventType, payload domain.Payload, previousHash string) string
}

// LedgerService owns the append-only hash chain.
type LedgerService interface {
	// Append commits a new block in its own transaction.
	Append(ctx context.Context, eventType domain.EventType, payload domain.Payload) (*domain.LedgerBlock, error)
	// AppendTx composes the append into the caller's transaction so a domain
	// mutation and its ledger record commit as one atomic unit.
	AppendTx(ctx context.Context, tx pgx.Tx, eventType domain.EventType, payload domain.Payload) (*domain.LedgerBlock, error)
	// ValidateChain recomputes every hash and linkage; false on first mismatch.
	ValidateChain(ctx context.Context) (bool, error)
	Chain(ctx context.Context) ([]domain.LedgerBlock, error)
	Head(ctx context.Context) (*domain.LedgerBlock, error)
}

// CreateItemRequest holds validated input for listing an item.
type CreateItemRequest struct {
	OwnerID       uuid.UUID
	Title         string
	Description   string
	Address       string
	StartingPrice int64
	BuyNowPrice   *int64
	StartsAt      *time.Time // nil = now
	EndsAt        *time.Time // nil = fixed at activation
}

// PlaceBidRequest holds validated input for a bid.
type PlaceBidRequest struct {
	ItemID   uuid.UUID
	BidderID uuid.UUID
	Amount   int64
}

// ItemDetail bundles an item with its bid state for read paths.
type ItemDetail struct {
	Item       *domain.AuctionItem
	Bids       []domain.Bid
	HighestBid *domain.Bid
}

// AuctionService owns bid acceptance and activation rules.
type AuctionService interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*domain.AuctionItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDetail, error)
	ListOpenItems(ctx context.Context) ([]domain.AuctionItem, error)
	// Join idempotently registers a participant and re-evaluates activation.
	Join(ctx context.Context, itemID, userID uuid.UUID) (*domain.AuctionItem, error)
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*domain.Bid, error)
	// TryActivate is idempotent: past the threshold it activates exactly once,
	// afterwards it is a no-op.
	TryActivate(ctx context.Context, itemID uuid.UUID) (*domain.AuctionItem, error)
}

// StartPaymentRequest holds validated input for starting a payment.
type StartPaymentRequest struct {
	ItemID  uuid.UUID
	BuyerID uuid.UUID
	Kind    domain.PaymentKind
}

// PaymentService records purchases and their ledger trail.
type PaymentService interface {
	StartPayment(ctx context.Context, req StartPaymentRequest) (*domain.Payment, error)
	// ConfirmPayment is idempotent: a duplicate confirmation of a succeeded
	// payment returns it unchanged with no second ledger event.
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID, providerRef string) (*domain.Payment, error)
	FailPayment(ctx context.Context, paymentID uuid.UUID, reason string) (*domain.Payment, error)
}

// CallbackClaims holds the verified claims of a provider callback token.
type CallbackClaims struct {
	PaymentID   uuid.UUID
	ProviderRef string
}

// CallbackTokenService signs and verifies payment-provider callback tokens.
type CallbackTokenService interface {
	Generate(paymentID uuid.UUID, providerRef string) (string, time.Time, error)
	Validate(tokenString string) (*CallbackClaims, error)
}

// HeadCache is a best-effort read cache of the chain head.
type HeadCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context) (*domain.LedgerBlock, error)
	Set(ctx context.Context, block *domain.LedgerBlock, ttl time.Duration) error
}
