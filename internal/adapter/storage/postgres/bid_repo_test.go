package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bidColumns = []string{"id", "item_id", "bidder_id", "amount", "created_at"}

func TestBidRepo_GetHighest_TieBreaksOnEarlierBid(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBidRepo(mock)
	ctx := context.Background()

	itemID := uuid.New()
	earlier := uuid.New()
	ts := time.Now().UTC().Add(-time.Minute)

	mock.ExpectQuery(`(?s)FROM bids.+ORDER BY amount DESC, created_at ASC.+LIMIT 1`).
		WithArgs(itemID).
		WillReturnRows(pgxmock.NewRows(bidColumns).
			AddRow(earlier, itemID, uuid.New(), int64(15000), ts))

	bid, err := repo.GetHighest(ctx, itemID)
	require.NoError(t, err)
	require.NotNil(t, bid)
	assert.Equal(t, earlier, bid.ID)
	assert.Equal(t, int64(15000), bid.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBidRepo_GetHighest_NoBids(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBidRepo(mock)

	itemID := uuid.New()
	mock.ExpectQuery(`(?s)FROM bids.+LIMIT 1`).
		WithArgs(itemID).
		WillReturnRows(pgxmock.NewRows(bidColumns))

	bid, err := repo.GetHighest(context.Background(), itemID)
	require.NoError(t, err)
	assert.Nil(t, bid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBidRepo_CountDistinctBidders(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBidRepo(mock)
	ctx := context.Background()

	itemID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT bidder_id\) FROM bids`).
		WithArgs(itemID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	count, err := repo.CountDistinctBidders(ctx, tx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
