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

var itemColumns = []string{
	"id", "owner_id", "title", "description", "address", "starting_price",
	"buy_now_price", "starts_at", "ends_at", "is_active", "activated_at", "created_at",
}

func TestItemRepo_GetByIDForUpdate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewItemRepo(mock)
	ctx := context.Background()

	id := uuid.New()
	ownerID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM auction_items WHERE id = \$1 FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(itemColumns).
			AddRow(id, ownerID, "vintage camera", "", "", int64(10000),
				nil, now.Add(-time.Hour), nil, false, nil, now.Add(-time.Hour)))
	mock.ExpectRollback()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	item, err := repo.GetByIDForUpdate(ctx, tx, id)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, ownerID, item.OwnerID)
	assert.Nil(t, item.BuyNowPrice)
	assert.False(t, item.IsActive)
}

func TestItemRepo_GetByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewItemRepo(mock)

	id := uuid.New()
	mock.ExpectQuery(`FROM auction_items WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(itemColumns))

	item, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemRepo_MarkActive_GuardsOnInactive(t *testing.T) {
	mock := newMockPool(t)
	repo := NewItemRepo(mock)
	ctx := context.Background()

	id := uuid.New()
	activatedAt := time.Now().UTC()
	endsAt := activatedAt.Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)UPDATE auction_items.+WHERE id = \$1 AND is_active = FALSE`).
		WithArgs(id, activatedAt, endsAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.MarkActive(ctx, tx, id, activatedAt, endsAt))
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
