package service

import (
	"context"
	"fmt"
	"time"

	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// AuctionRules holds the configured auction parameters.
type AuctionRules struct {
	// MinParticipants gates bid acceptance (distinct joined users, the
	// bidder included).
	MinParticipants int
	// ActivationThreshold is the distinct-bidder count that activates the
	// auction.
	ActivationThreshold int
	// MinIncrement is the required step over the current highest bid, in
	// minor units.
	MinIncrement int64
	// Duration is the auction length fixed at activation when the item has
	// no end time yet.
	Duration time.Duration
}

// DefaultAuctionRules returns the standard rule set.
func DefaultAuctionRules() AuctionRules {
	return AuctionRules{
		MinParticipants:     2,
		ActivationThreshold: 2,
		MinIncrement:        100,
		Duration:            24 * time.Hour,
	}
}

// AuctionServiceImpl implements ports.AuctionService. All state transitions
// lock the item row first, so concurrent bids on one item serialize while
// unrelated items proceed in parallel.
type AuctionServiceImpl struct {
	itemRepo   ports.ItemRepository
	bidRepo    ports.BidRepository
	partRepo   ports.ParticipantRepository
	ledger     ports.LedgerService
	transactor ports.DBTransactor
	rules      AuctionRules
	log        zerolog.Logger
}

// NewAuctionService creates a new AuctionServiceImpl.
func NewAuctionService(
	itemRepo ports.ItemRepository,
	bidRepo ports.BidRepository,
	partRepo ports.ParticipantRepository,
	ledger ports.LedgerService,
	transactor ports.DBTransactor,
	rules AuctionRules,
	log zerolog.Logger,
) *AuctionServiceImpl {
	return &AuctionServiceImpl{
		itemRepo:   itemRepo,
		bidRepo:    bidRepo,
		partRepo:   partRepo,
		ledger:     ledger,
		transactor: transactor,
		rules:      rules,
		log:        log,
	}
}

// CreateItem lists a new item. The owner joins as the first participant and
// the listing is ledger-recorded, all in one transaction.
func (s *AuctionServiceImpl) CreateItem(ctx context.Context, req ports.CreateItemRequest) (*domain.AuctionItem, error) {
	if req.StartingPrice <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.BuyNowPrice != nil && *req.BuyNowPrice <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Title == "" {
		return nil, apperror.Validation("title is required")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	startsAt := now
	if req.StartsAt != nil {
		startsAt = req.StartsAt.UTC()
	}

	item := &domain.AuctionItem{
		ID:            uuid.New(),
		OwnerID:       req.OwnerID,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		StartingPrice: req.StartingPrice,
		BuyNowPrice:   req.BuyNowPrice,
		StartsAt:      startsAt,
		EndsAt:        req.EndsAt,
		CreatedAt:     now,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.itemRepo.Create(ctx, dbTx, item); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create item: %w", err))
	}

	owner := &domain.Participant{ItemID: item.ID, UserID: item.OwnerID, JoinedAt: now}
	if _, err := s.partRepo.Upsert(ctx, dbTx, owner); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("join owner: %w", err))
	}

	if _, err := s.ledger.AppendTx(ctx, dbTx, domain.EventItemCreated, domain.NewItemCreatedPayload(item.ID, item.OwnerID)); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("item_id", item.ID.String()).
		Str("owner_id", item.OwnerID.String()).
		Int64("starting_price", item.StartingPrice).
		Msg("item listed")

	return item, nil
}

// GetItem returns the item with its bids and standing highest bid.
func (s *AuctionServiceImpl) GetItem(ctx context.Context, id uuid.UUID) (*ports.ItemDetail, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrNotFound("item")
	}

	bids, err := s.bidRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list bids: %w", err))
	}

	highest, err := s.bidRepo.GetHighest(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get highest bid: %w", err))
	}

	return &ports.ItemDetail{Item: item, Bids: bids, HighestBid: highest}, nil
}

// ListOpenItems returns items still inside their bidding window.
func (s *AuctionServiceImpl) ListOpenItems(ctx context.Context) ([]domain.AuctionItem, error) {
	items, err := s.itemRepo.ListOpen(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list open items: %w", err))
	}
	return items, nil
}

// Join idempotently registers a participant and re-evaluates activation.
func (s *AuctionServiceImpl) Join(ctx context.Context, itemID, userID uuid.UUID) (*domain.AuctionItem, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	item, err := s.itemRepo.GetByIDForUpdate(ctx, dbTx, itemID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrNotFound("item")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	created, err := s.partRepo.Upsert(ctx, dbTx, &domain.Participant{ItemID: itemID, UserID: userID, JoinedAt: now})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("join item: %w", err))
	}

	item, err = s.evaluateActivation(ctx, dbTx, item, now)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if created {
		s.log.Info().
			Str("item_id", itemID.String()).
			Str("user_id", userID.String()).
			Msg("participant joined")
	}

	return item, nil
}

// PlaceBid validates and accepts a bid, records it in the ledger, and
// evaluates activation as one atomic unit. Rejections roll back
// everything, including the bidder's provisional join.
func (s *AuctionServiceImpl) PlaceBid(ctx context.Context, req ports.PlaceBidRequest) (*domain.Bid, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Per-item serialization point: concurrent bids on the same item queue
	// here, so neither validates against a stale highest bid.
	item, err := s.itemRepo.GetByIDForUpdate(ctx, dbTx, req.ItemID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrNotFound("item")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	if !item.CanAcceptBids(now) {
		return nil, apperror.ErrAuctionNotAcceptingBids()
	}

	// The bidder joins as part of the bid; the owner already joined at
	// listing time, so the first outside bidder reaches the gate.
	bidder := &domain.Participant{ItemID: req.ItemID, UserID: req.BidderID, JoinedAt: now}
	if _, err := s.partRepo.Upsert(ctx, dbTx, bidder); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("join bidder: %w", err))
	}

	participants, err := s.partRepo.CountByItem(ctx, dbTx, req.ItemID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count participants: %w", err))
	}
	if participants < s.rules.MinParticipants {
		return nil, apperror.ErrInsufficientParticipants(s.rules.MinParticipants)
	}

	highest, err := s.bidRepo.GetHighestTx(ctx, dbTx, req.ItemID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get highest bid: %w", err))
	}

	// The starting price acts as the standing amount until a bid exists, so
	// the first valid bid must already clear it by the minimum increment.
	standing := item.StartingPrice
	if highest != nil {
		standing = highest.Amount
	}
	minAllowed := standing + s.rules.MinIncrement
	if req.Amount < minAllowed {
		return nil, apperror.ErrBidTooLow(domain.FormatAmount(minAllowed))
	}

	bid := &domain.Bid{
		ID:        uuid.New(),
		ItemID:    req.ItemID,
		BidderID:  req.BidderID,
		Amount:    req.Amount,
		CreatedAt: now,
	}
	if err := s.bidRepo.Create(ctx, dbTx, bid); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create bid: %w", err))
	}

	if _, err := s.ledger.AppendTx(ctx, dbTx, domain.EventBidPlaced, domain.NewBidPlacedPayload(req.ItemID, req.BidderID, req.Amount)); err != nil {
		return nil, err
	}

	if _, err := s.evaluateActivation(ctx, dbTx, item, now); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("item_id", req.ItemID.String()).
		Str("bidder_id", req.BidderID.String()).
		Int64("amount", req.Amount).
		Msg("bid accepted")

	return bid, nil
}

// TryActivate is the explicit, idempotent activation check.
func (s *AuctionServiceImpl) TryActivate(ctx context.Context, itemID uuid.UUID) (*domain.AuctionItem, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	item, err := s.itemRepo.GetByIDForUpdate(ctx, dbTx, itemID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrNotFound("item")
	}

	item, err = s.evaluateActivation(ctx, dbTx, item, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	return item, nil
}

// evaluateActivation fires the one-shot pending -> active transition when the
// distinct-bidder threshold is met. Already-active items are a no-op, which
// makes every caller idempotent. The caller holds the item row lock.
func (s *AuctionServiceImpl) evaluateActivation(ctx context.Context, tx pgx.Tx, item *domain.AuctionItem, now time.Time) (*domain.AuctionItem, error) {
	if item.IsActive {
		return item, nil
	}

	bidders, err := s.bidRepo.CountDistinctBidders(ctx, tx, item.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count distinct bidders: %w", err))
	}
	if bidders < s.rules.ActivationThreshold {
		return item, nil
	}

	activatedAt := now
	endsAt := item.EndsAt
	if endsAt == nil {
		e := activatedAt.Add(s.rules.Duration)
		endsAt = &e
	}

	if err := s.itemRepo.MarkActive(ctx, tx, item.ID, activatedAt, *endsAt); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark active: %w", err))
	}

	payload := domain.NewAuctionActivatedPayload(item.ID, activatedAt.Format(time.RFC3339Nano))
	if _, err := s.ledger.AppendTx(ctx, tx, domain.EventAuctionActivated, payload); err != nil {
		return nil, err
	}

	item.IsActive = true
	item.ActivatedAt = &activatedAt
	item.EndsAt = endsAt

	s.log.Info().
		Str("item_id", item.ID.String()).
		Time("ends_at", *endsAt).
		Msg("auction activated")

	return item, nil
}
