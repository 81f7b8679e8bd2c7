package postgres

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantRepo_Upsert_NewRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepo(mock)
	ctx := context.Background()

	p := &domain.Participant{ItemID: uuid.New(), UserID: uuid.New(), JoinedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT INTO auction_participants.+ON CONFLICT \(item_id, user_id\) DO NOTHING`).
		WithArgs(p.ItemID, p.UserID, p.JoinedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	created, err := repo.Upsert(ctx, tx, p)
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepo_Upsert_AlreadyJoined(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepo(mock)
	ctx := context.Background()

	p := &domain.Participant{ItemID: uuid.New(), UserID: uuid.New(), JoinedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO auction_participants`).
		WithArgs(p.ItemID, p.UserID, p.JoinedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectRollback()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	created, err := repo.Upsert(ctx, tx, p)
	require.NoError(t, err)
	assert.False(t, created)
}
