package service

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports"
	"auction-ledger/internal/core/ports/mocks"
	"auction-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type auctionFixture struct {
	itemRepo   *mocks.MockItemRepository
	bidRepo    *mocks.MockBidRepository
	partRepo   *mocks.MockParticipantRepository
	ledger     *mocks.MockLedgerService
	transactor *mocks.MockDBTransactor
	tx         *noopTx
	svc        *AuctionServiceImpl
}

func newAuctionFixture(t *testing.T) *auctionFixture {
	ctrl := gomock.NewController(t)
	f := &auctionFixture{
		itemRepo:   mocks.NewMockItemRepository(ctrl),
		bidRepo:    mocks.NewMockBidRepository(ctrl),
		partRepo:   mocks.NewMockParticipantRepository(ctrl),
		ledger:     mocks.NewMockLedgerService(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		tx:         &noopTx{},
	}
	f.svc = NewAuctionService(f.itemRepo, f.bidRepo, f.partRepo, f.ledger, f.transactor, DefaultAuctionRules(), zerolog.Nop())
	return f
}

func openItem(starting int64) *domain.AuctionItem {
	return &domain.AuctionItem{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Title:         "vintage camera",
		StartingPrice: starting,
		StartsAt:      time.Now().UTC().Add(-time.Hour),
		CreatedAt:     time.Now().UTC().Add(-time.Hour),
	}
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestCreateItem_RecordsListingAndOwnerJoin(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	ownerID := uuid.New()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().Create(ctx, f.tx, gomock.Any()).Return(nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, p *domain.Participant) (bool, error) {
			assert.Equal(t, ownerID, p.UserID)
			return true, nil
		})
	f.ledger.EXPECT().AppendTx(ctx, f.tx, domain.EventItemCreated, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, _ domain.EventType, p domain.Payload) (*domain.LedgerBlock, error) {
			assert.Equal(t, ownerID.String(), p["owner_id"])
			return &domain.LedgerBlock{}, nil
		})

	item, err := f.svc.CreateItem(ctx, ports.CreateItemRequest{
		OwnerID:       ownerID,
		Title:         "vintage camera",
		StartingPrice: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, item.OwnerID)
	assert.False(t, item.IsActive)
	assert.Nil(t, item.EndsAt)
	assert.True(t, f.tx.committed)
}

func TestCreateItem_RejectsNonPositivePrice(t *testing.T) {
	f := newAuctionFixture(t)

	_, err := f.svc.CreateItem(context.Background(), ports.CreateItemRequest{
		OwnerID:       uuid.New(),
		Title:         "x",
		StartingPrice: 0,
	})
	assert.Equal(t, "AUC_006", appCode(t, err))
}

func TestPlaceBid_AcceptsFirstBidOverStartingPrice(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	bidderID := uuid.New()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(true, nil)
	f.partRepo.EXPECT().CountByItem(ctx, f.tx, item.ID).Return(2, nil)
	f.bidRepo.EXPECT().GetHighestTx(ctx, f.tx, item.ID).Return(nil, nil)
	f.bidRepo.EXPECT().Create(ctx, f.tx, gomock.Any()).Return(nil)
	f.ledger.EXPECT().AppendTx(ctx, f.tx, domain.EventBidPlaced, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, _ domain.EventType, p domain.Payload) (*domain.LedgerBlock, error) {
			assert.Equal(t, "101.00", p["amount"])
			return &domain.LedgerBlock{}, nil
		})
	f.bidRepo.EXPECT().CountDistinctBidders(ctx, f.tx, item.ID).Return(1, nil)

	bid, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: bidderID, Amount: 10100})
	require.NoError(t, err)
	assert.Equal(t, int64(10100), bid.Amount)
	assert.True(t, f.tx.committed)
}

func TestPlaceBid_RejectsBidAtStartingPrice(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(true, nil)
	f.partRepo.EXPECT().CountByItem(ctx, f.tx, item.ID).Return(2, nil)
	f.bidRepo.EXPECT().GetHighestTx(ctx, f.tx, item.ID).Return(nil, nil)

	// Matching the starting price is not enough: the first bid must clear it
	// by the minimum increment.
	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: uuid.New(), Amount: 10000})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUC_001", appErr.Code)
	assert.Contains(t, appErr.Message, "101.00")
	assert.True(t, f.tx.rolledBack)
}

func TestPlaceBid_RejectsBelowHighestPlusIncrement(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	highest := &domain.Bid{ID: uuid.New(), ItemID: item.ID, BidderID: uuid.New(), Amount: 10000}

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(false, nil)
	f.partRepo.EXPECT().CountByItem(ctx, f.tx, item.ID).Return(2, nil)
	f.bidRepo.EXPECT().GetHighestTx(ctx, f.tx, item.ID).Return(highest, nil)

	// Matching the standing bid is not enough; the minimum increment applies.
	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: uuid.New(), Amount: 10000})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUC_001", appErr.Code)
	assert.Contains(t, appErr.Message, "101.00")
}

func TestPlaceBid_RejectsWithoutEnoughParticipants(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(true, nil)
	f.partRepo.EXPECT().CountByItem(ctx, f.tx, item.ID).Return(1, nil)

	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: item.OwnerID, Amount: 10000})
	assert.Equal(t, "AUC_003", appCode(t, err))
	// The provisional join must roll back with the rejected bid.
	assert.True(t, f.tx.rolledBack)
}

func TestPlaceBid_RejectsAfterWindowCloses(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	endsAt := time.Now().UTC().Add(-time.Minute)
	item.EndsAt = &endsAt

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)

	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: uuid.New(), Amount: 20000})
	assert.Equal(t, "AUC_002", appCode(t, err))
}

func TestPlaceBid_UnknownItem(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	itemID := uuid.New()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, itemID).Return(nil, nil)

	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: itemID, BidderID: uuid.New(), Amount: 100})
	assert.Equal(t, "SYS_404", appCode(t, err))
}

func TestPlaceBid_SecondBidderActivatesAuction(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	bidderID := uuid.New()
	before := time.Now().UTC()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(true, nil)
	f.partRepo.EXPECT().CountByItem(ctx, f.tx, item.ID).Return(3, nil)
	f.bidRepo.EXPECT().GetHighestTx(ctx, f.tx, item.ID).Return(
		&domain.Bid{ID: uuid.New(), ItemID: item.ID, BidderID: uuid.New(), Amount: 10100}, nil)
	f.bidRepo.EXPECT().Create(ctx, f.tx, gomock.Any()).Return(nil)
	f.ledger.EXPECT().AppendTx(ctx, f.tx, domain.EventBidPlaced, gomock.Any()).Return(&domain.LedgerBlock{}, nil)
	f.bidRepo.EXPECT().CountDistinctBidders(ctx, f.tx, item.ID).Return(2, nil)
	f.itemRepo.EXPECT().MarkActive(ctx, f.tx, item.ID, gomock.Any(), gomock.Any()).Return(nil)
	f.ledger.EXPECT().AppendTx(ctx, f.tx, domain.EventAuctionActivated, gomock.Any()).Return(&domain.LedgerBlock{}, nil)

	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: bidderID, Amount: 15000})
	require.NoError(t, err)

	assert.True(t, item.IsActive)
	require.NotNil(t, item.ActivatedAt)
	require.NotNil(t, item.EndsAt)
	assert.Equal(t, item.ActivatedAt.Add(24*time.Hour), *item.EndsAt)
	assert.False(t, item.ActivatedAt.Before(before.Truncate(time.Microsecond)))
	assert.True(t, f.tx.committed)
}

func TestPlaceBid_ActivationKeepsPresetEndTime(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	preset := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond)
	item.EndsAt = &preset

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(false, nil)
	f.partRepo.EXPECT().CountByItem(ctx, f.tx, item.ID).Return(2, nil)
	f.bidRepo.EXPECT().GetHighestTx(ctx, f.tx, item.ID).Return(nil, nil)
	f.bidRepo.EXPECT().Create(ctx, f.tx, gomock.Any()).Return(nil)
	f.ledger.EXPECT().AppendTx(ctx, f.tx, domain.EventBidPlaced, gomock.Any()).Return(&domain.LedgerBlock{}, nil)
	f.bidRepo.EXPECT().CountDistinctBidders(ctx, f.tx, item.ID).Return(2, nil)
	f.itemRepo.EXPECT().MarkActive(ctx, f.tx, item.ID, gomock.Any(), preset).Return(nil)
	f.ledger.EXPECT().AppendTx(ctx, f.tx, domain.EventAuctionActivated, gomock.Any()).Return(&domain.LedgerBlock{}, nil)

	_, err := f.svc.PlaceBid(ctx, ports.PlaceBidRequest{ItemID: item.ID, BidderID: uuid.New(), Amount: 10100})
	require.NoError(t, err)
	assert.Equal(t, preset, *item.EndsAt)
}

func TestTryActivate_NoOpWhenAlreadyActive(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	item.IsActive = true

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)

	got, err := f.svc.TryActivate(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.True(t, f.tx.committed)
}

func TestTryActivate_BelowThreshold(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.bidRepo.EXPECT().CountDistinctBidders(ctx, f.tx, item.ID).Return(1, nil)

	got, err := f.svc.TryActivate(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestJoin_Idempotent(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	userID := uuid.New()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.itemRepo.EXPECT().GetByIDForUpdate(ctx, f.tx, item.ID).Return(item, nil)
	f.partRepo.EXPECT().Upsert(ctx, f.tx, gomock.Any()).Return(false, nil)
	f.bidRepo.EXPECT().CountDistinctBidders(ctx, f.tx, item.ID).Return(0, nil)

	_, err := f.svc.Join(ctx, item.ID, userID)
	require.NoError(t, err)
	assert.True(t, f.tx.committed)
}

func TestGetItem_BundlesBidState(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	item := openItem(10000)
	bids := []domain.Bid{{ID: uuid.New(), ItemID: item.ID, Amount: 10100}}

	f.itemRepo.EXPECT().GetByID(ctx, item.ID).Return(item, nil)
	f.bidRepo.EXPECT().ListByItem(ctx, item.ID).Return(bids, nil)
	f.bidRepo.EXPECT().GetHighest(ctx, item.ID).Return(&bids[0], nil)

	detail, err := f.svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, detail.Item)
	assert.Len(t, detail.Bids, 1)
	assert.Equal(t, int64(10100), detail.HighestBid.Amount)
}
