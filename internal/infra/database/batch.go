package database

import (
	"context"
	"database/sql"
	"fmt"

	"recovery_notification_engine/internal/domain/storage"
)

// txBatch applies its staged ops inside one transaction, in stage order.
// An empty batch commits as a no-op without touching the database.
type txBatch struct {
	db  *sql.DB
	ops []storage.Op
}

func (b *txBatch) Stage(op storage.Op) {
	b.ops = append(b.ops, op)
}

func (b *txBatch) Len() int {
	return len(b.ops)
}

func (b *txBatch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}

	txn, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	for _, op := range b.ops {
		if err := op(ctx, txn); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// TxBatchFactory produces transactional batches backed by the shared
// connection pool.
type TxBatchFactory struct {
	db *sql.DB
}

func NewTxBatchFactory(db *sql.DB) *TxBatchFactory {
	return &TxBatchFactory{db: db}
}

func (f *TxBatchFactory) NewBatch() storage.Batch {
	return &txBatch{db: f.db}
}
