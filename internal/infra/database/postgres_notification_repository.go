package database

import (
	"context"
	"database/sql"
	"fmt"

	"recovery_notification_engine/internal/domain/notification"
	"recovery_notification_engine/internal/domain/storage"
)

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) StageCreate(b storage.Batch, n *notification.Notification) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `INSERT INTO notifications
                   (id, recipient_id, type, priority, title, body, reference_id, reference_type, is_read, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := tx.ExecContext(ctx, query,
			n.ID, n.RecipientID, n.Type, n.Priority, n.Title, n.Body,
			n.ReferenceID, n.ReferenceType, n.Read, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error creating notification %s for user %d: %w", n.ID, n.RecipientID, err)
		}
		return nil
	})
}
