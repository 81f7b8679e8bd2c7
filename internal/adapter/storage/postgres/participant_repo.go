package postgres

import (
	"context"
	"fmt"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ParticipantRepo implements ports.ParticipantRepository.
type ParticipantRepo struct {
	pool Pool
}

// NewParticipantRepo creates a new ParticipantRepo.
func NewParticipantRepo(pool Pool) *ParticipantRepo {
	return &ParticipantRepo{pool: pool}
}

// Upsert registers the participant, ignoring a repeated join. The returned
// bool reports whether a new row was actually written.
func (r *ParticipantRepo) Upsert(ctx context.Context, tx pgx.Tx, p *domain.Participant) (bool, error) {
	query := `INSERT INTO auction_participants (item_id, user_id, joined_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (item_id, user_id) DO NOTHING`
	tag, err := tx.Exec(ctx, query, p.ItemID, p.UserID, p.JoinedAt)
	if err != nil {
		return false, fmt.Errorf("upserting participant: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountByItem counts the item's participants within the caller's transaction.
func (r *ParticipantRepo) CountByItem(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM auction_participants WHERE item_id = $1`, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting participants: %w", err)
	}
	return count, nil
}
