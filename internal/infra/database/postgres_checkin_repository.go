package database

import (
	"context"
	"database/sql"
	"fmt"

	"recovery_notification_engine/internal/domain/storage"
)

type PostgresCheckinRepository struct {
	db *sql.DB
}

func NewPostgresCheckinRepository(db *sql.DB) *PostgresCheckinRepository {
	return &PostgresCheckinRepository{db: db}
}

func (r *PostgresCheckinRepository) StageMarkCrisis(b storage.Batch, id int64, reason string) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `UPDATE checkins SET crisis_detected = TRUE, crisis_reason = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, reason, id); err != nil {
			return fmt.Errorf("error marking crisis on check-in %d: %w", id, err)
		}
		return nil
	})
}
