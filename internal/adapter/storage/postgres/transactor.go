package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// PgxTransactor implements ports.DBTransactor over a Pool.
type PgxTransactor struct {
	pool Pool
}

// NewPgxTransactor creates a new PgxTransactor.
func NewPgxTransactor(pool Pool) *PgxTransactor {
	return &PgxTransactor{pool: pool}
}

// Begin starts a new database transaction.
func (t *PgxTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
