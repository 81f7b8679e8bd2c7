package redis

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestHeadCache_RoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewHeadCache(client)
	ctx := context.Background()

	block := &domain.LedgerBlock{
		Index:        7,
		Timestamp:    time.Now().UTC().Truncate(time.Microsecond),
		EventType:    domain.EventBidPlaced,
		Payload:      domain.Payload{"item_id": "i", "bidder_id": "b", "amount": "101.00"},
		PreviousHash: "aa",
		Hash:         "bb",
	}

	require.NoError(t, cache.Set(ctx, block, 30*time.Second))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, block.Index, got.Index)
	assert.Equal(t, block.Hash, got.Hash)
	assert.Equal(t, block.Payload, got.Payload)
	assert.True(t, block.Timestamp.Equal(got.Timestamp))
}

func TestHeadCache_MissReturnsNil(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewHeadCache(client)

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHeadCache_ExpiresWithTTL(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewHeadCache(client)
	ctx := context.Background()

	block := &domain.LedgerBlock{Index: 1, Hash: "aa"}
	require.NoError(t, cache.Set(ctx, block, 10*time.Second))

	mr.FastForward(11 * time.Second)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRateLimitStore_FixedWindow(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewRateLimitStore(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, err := store.Incr(ctx, "rl:user-1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// A new window starts from zero.
	mr.FastForward(61 * time.Second)
	count, err := store.Incr(ctx, "rl:user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRateLimitStore_KeysAreIndependent(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)
	ctx := context.Background()

	_, err := store.Incr(ctx, "rl:user-1", time.Minute)
	require.NoError(t, err)

	count, err := store.Incr(ctx, "rl:user-2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
