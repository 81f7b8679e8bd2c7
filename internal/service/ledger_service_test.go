package service

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports/mocks"
	"auction-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ledgerFixture struct {
	repo       *mocks.MockLedgerRepository
	transactor *mocks.MockDBTransactor
	hasher     *SHA256ChainHasher
	tx         *noopTx
	svc        *LedgerServiceImpl
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	ctrl := gomock.NewController(t)
	f := &ledgerFixture{
		repo:       mocks.NewMockLedgerRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		hasher:     NewSHA256ChainHasher(),
		tx:         &noopTx{},
	}
	f.svc = NewLedgerService(f.repo, f.hasher, f.transactor, nil, zerolog.Nop())
	return f
}

func TestAppend_Genesis(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	payload := domain.NewItemCreatedPayload(uuid.New(), uuid.New())

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.repo.EXPECT().GetLastForUpdate(ctx, f.tx).Return(nil, nil)

	var inserted *domain.LedgerBlock
	f.repo.EXPECT().Insert(ctx, f.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, b *domain.LedgerBlock) error {
			inserted = b
			return nil
		})

	block, err := f.svc.Append(ctx, domain.EventItemCreated, payload)
	require.NoError(t, err)
	require.NotNil(t, inserted)

	assert.Equal(t, int64(0), block.Index)
	assert.Equal(t, domain.GenesisPreviousHash, block.PreviousHash)
	assert.True(t, block.IsGenesis())
	assert.Equal(t, f.hasher.BlockDigest(block), block.Hash)
	assert.True(t, f.tx.committed)
}

func TestAppend_LinksToHead(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	head := &domain.LedgerBlock{
		Index:     4,
		Timestamp: time.Now().UTC().Add(-time.Minute).Truncate(time.Microsecond),
		EventType: domain.EventBidPlaced,
		Hash:      "7c2e1d0f3a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5",
	}

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)
	f.repo.EXPECT().GetLastForUpdate(ctx, f.tx).Return(head, nil)
	f.repo.EXPECT().Insert(ctx, f.tx, gomock.Any()).Return(nil)

	block, err := f.svc.Append(ctx, domain.EventUserLoggedIn, domain.Payload{"user_id": "u-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), block.Index)
	assert.Equal(t, head.Hash, block.PreviousHash)
	assert.True(t, block.LinksTo(head))
	assert.False(t, block.Timestamp.Before(head.Timestamp))
}

func TestAppend_RejectsUnknownEventType(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)

	_, err := f.svc.Append(ctx, domain.EventType("ITEM_DELETED"), domain.Payload{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LGR_001", appErr.Code)
	assert.True(t, f.tx.rolledBack)
}

func TestAppend_RejectsIncompletePayload(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)

	// BID_PLACED requires item_id, bidder_id and amount.
	_, err := f.svc.Append(ctx, domain.EventBidPlaced, domain.Payload{"item_id": "i-1"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LGR_002", appErr.Code)
	assert.True(t, f.tx.rolledBack)
}

func TestAppend_RejectsExtraPayloadKey(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.transactor.EXPECT().Begin(ctx).Return(f.tx, nil)

	_, err := f.svc.Append(ctx, domain.EventUserLoggedIn, domain.Payload{"user_id": "u-1", "note": "x"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LGR_002", appErr.Code)
}

// buildChain produces a valid n-block chain through the real hasher.
func buildChain(t *testing.T, h *SHA256ChainHasher, n int) []domain.LedgerBlock {
	t.Helper()
	blocks := make([]domain.LedgerBlock, 0, n)
	prevHash := domain.GenesisPreviousHash
	ts := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

	for i := 0; i < n; i++ {
		b := domain.LedgerBlock{
			Index:        int64(i),
			Timestamp:    ts.Add(time.Duration(i) * time.Second),
			EventType:    domain.EventUserLoggedIn,
			Payload:      domain.Payload{"user_id": uuid.New().String()},
			PreviousHash: prevHash,
		}
		b.Hash = h.BlockDigest(&b)
		prevHash = b.Hash
		blocks = append(blocks, b)
	}
	return blocks
}

func TestValidateChain_Valid(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().ListAll(ctx).Return(buildChain(t, f.hasher, 5), nil)

	ok, err := f.svc.ValidateChain(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateChain_EmptyChainIsValid(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().ListAll(ctx).Return(nil, nil)

	ok, err := f.svc.ValidateChain(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateChain_DetectsPayloadTamper(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	chain := buildChain(t, f.hasher, 5)
	chain[2].Payload["user_id"] = "someone-else"
	f.repo.EXPECT().ListAll(ctx).Return(chain, nil)

	ok, err := f.svc.ValidateChain(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateChain_DetectsRelink(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	// Rewrite block 2 consistently with itself but leave block 3 pointing at
	// the old hash. The break must surface at the successor.
	chain := buildChain(t, f.hasher, 5)
	chain[2].Payload["user_id"] = "someone-else"
	chain[2].Hash = f.hasher.BlockDigest(&chain[2])
	f.repo.EXPECT().ListAll(ctx).Return(chain, nil)

	ok, err := f.svc.ValidateChain(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateChain_DetectsDeletion(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	chain := buildChain(t, f.hasher, 5)
	truncated := append(chain[:2:2], chain[3:]...)
	f.repo.EXPECT().ListAll(ctx).Return(truncated, nil)

	ok, err := f.svc.ValidateChain(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHead_CacheHitSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	transactor := mocks.NewMockDBTransactor(ctrl)
	cache := mocks.NewMockHeadCache(ctrl)
	svc := NewLedgerService(repo, NewSHA256ChainHasher(), transactor, cache, zerolog.Nop())

	ctx := context.Background()
	head := &domain.LedgerBlock{Index: 9, Hash: "ff"}
	cache.EXPECT().Get(ctx).Return(head, nil)

	got, err := svc.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, head, got)
}

func TestHead_CacheMissFallsThroughAndRefills(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	transactor := mocks.NewMockDBTransactor(ctrl)
	cache := mocks.NewMockHeadCache(ctrl)
	svc := NewLedgerService(repo, NewSHA256ChainHasher(), transactor, cache, zerolog.Nop())

	ctx := context.Background()
	head := &domain.LedgerBlock{Index: 3, Hash: "aa"}
	cache.EXPECT().Get(ctx).Return(nil, nil)
	repo.EXPECT().GetLast(ctx).Return(head, nil)
	cache.EXPECT().Set(ctx, head, headCacheTTL).Return(nil)

	got, err := svc.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, head, got)
}

func TestHead_EmptyChain(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().GetLast(ctx).Return(nil, nil)

	got, err := f.svc.Head(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
