package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// noopTx satisfies pgx.Tx for unit tests where the repositories are mocked
// and no SQL ever runs. It records the commit/rollback outcome.
type noopTx struct {
	committed  bool
	rolledBack bool
}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *noopTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *noopTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *noopTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *noopTx) Conn() *pgx.Conn { return nil }
