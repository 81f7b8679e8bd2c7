package postgres

import (
	"context"
	"errors"
	"fmt"

	"auction-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. The table carries a unique
// index on block_index, so even if two transactions somehow raced past the
// head lock, the second insert fails instead of forking the chain.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const selectBlockColumns = `block_index, ts, event_type, payload, previous_hash, nonce, hash`

func scanBlock(row pgx.Row) (*domain.LedgerBlock, error) {
	var b domain.LedgerBlock
	err := row.Scan(&b.Index, &b.Timestamp, &b.EventType, &b.Payload, &b.PreviousHash, &b.Nonce, &b.Hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning ledger block: %w", err)
	}
	b.Timestamp = b.Timestamp.UTC()
	return &b, nil
}

// GetLastForUpdate locks the chain head row until the transaction ends.
// Concurrent appenders queue here, which is what keeps indices contiguous.
func (r *LedgerRepo) GetLastForUpdate(ctx context.Context, tx pgx.Tx) (*domain.LedgerBlock, error) {
	query := `SELECT ` + selectBlockColumns + `
	          FROM ledger_blocks
	          ORDER BY block_index DESC
	          LIMIT 1
	          FOR UPDATE`
	return scanBlock(tx.QueryRow(ctx, query))
}

// GetLast reads the chain head without locking.
func (r *LedgerRepo) GetLast(ctx context.Context) (*domain.LedgerBlock, error) {
	query := `SELECT ` + selectBlockColumns + `
	          FROM ledger_blocks
	          ORDER BY block_index DESC
	          LIMIT 1`
	return scanBlock(r.pool.QueryRow(ctx, query))
}

// Insert appends a block within the caller's transaction.
func (r *LedgerRepo) Insert(ctx context.Context, tx pgx.Tx, block *domain.LedgerBlock) error {
	query := `INSERT INTO ledger_blocks (block_index, ts, event_type, payload, previous_hash, nonce, hash)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := tx.Exec(ctx, query,
		block.Index, block.Timestamp, block.EventType, block.Payload,
		block.PreviousHash, block.Nonce, block.Hash)
	if err != nil {
		return fmt.Errorf("inserting ledger block: %w", err)
	}
	return nil
}

// ListAll returns the full chain in ascending index order.
func (r *LedgerRepo) ListAll(ctx context.Context) ([]domain.LedgerBlock, error) {
	query := `SELECT ` + selectBlockColumns + `
	          FROM ledger_blocks
	          ORDER BY block_index ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing ledger blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.LedgerBlock
	for rows.Next() {
		var b domain.LedgerBlock
		if err := rows.Scan(&b.Index, &b.Timestamp, &b.EventType, &b.Payload, &b.PreviousHash, &b.Nonce, &b.Hash); err != nil {
			return nil, fmt.Errorf("scanning ledger block: %w", err)
		}
		b.Timestamp = b.Timestamp.UTC()
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger blocks: %w", err)
	}
	return blocks, nil
}

// Count returns the chain length.
func (r *LedgerRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_blocks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting ledger blocks: %w", err)
	}
	return count, nil
}
