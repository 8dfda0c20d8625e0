package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq" // For pq.Array over integer[] columns

	"recovery_notification_engine/internal/domain/document"
	"recovery_notification_engine/internal/domain/storage"
)

type PostgresDocumentRepository struct {
	db *sql.DB
}

func NewPostgresDocumentRepository(db *sql.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

func (r *PostgresDocumentRepository) ListExpiring(ctx context.Context, until time.Time) ([]*document.Document, error) {
	query := `SELECT id, user_id, name, expires_at, status, warnings_sent, created_at, updated_at
               FROM documents
               WHERE status != $1 AND expires_at <= $2
               ORDER BY expires_at`

	rows, err := r.db.QueryContext(ctx, query, document.StatusExpired, until)
	if err != nil {
		return nil, fmt.Errorf("error listing expiring documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*document.Document, 0)
	for rows.Next() {
		d := &document.Document{}
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.ExpiresAt, &d.Status,
			pq.Array(&d.WarningsSent), &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

func (r *PostgresDocumentRepository) StageMarkExpired(b storage.Batch, id int64) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, document.StatusExpired, id); err != nil {
			return fmt.Errorf("error marking document %d expired: %w", id, err)
		}
		return nil
	})
}

func (r *PostgresDocumentRepository) StageWarningSent(b storage.Batch, id int64, interval int) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `UPDATE documents
                   SET warnings_sent = array_append(warnings_sent, $1), updated_at = NOW()
                   WHERE id = $2 AND NOT ($1 = ANY(warnings_sent))`
		if _, err := tx.ExecContext(ctx, query, interval, id); err != nil {
			return fmt.Errorf("error recording %d-day warning for document %d: %w", interval, id, err)
		}
		return nil
	})
}
