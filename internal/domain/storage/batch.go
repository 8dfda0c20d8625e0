package storage

import (
	"context"
	"database/sql"
)

// Tx is the write handle a staged operation executes against. *sql.Tx
// satisfies it; fakes in tests may pass nil when their operations close
// over in-memory state instead.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Op is a single staged mutation. Ops run in stage order inside the
// batch's transaction, so an op may read fields another op populated.
type Op func(ctx context.Context, tx Tx) error

// Batch accumulates mutations that must be observed together. Commit
// applies every staged op in one transaction, all or none. Committing
// an empty batch is a no-op.
type Batch interface {
	Stage(op Op)
	Len() int
	Commit(ctx context.Context) error
}

// BatchFactory opens fresh batches. One batch covers one logical unit
// of work (one appointment, one document, one flagged post); there is
// no cross-batch transaction.
type BatchFactory interface {
	NewBatch() Batch
}
