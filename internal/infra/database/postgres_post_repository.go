package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"recovery_notification_engine/internal/domain/post"
	"recovery_notification_engine/internal/domain/storage"
)

type PostgresPostRepository struct {
	db *sql.DB
}

func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) StageFlag(b storage.Batch, id int64, score float64, keywords []string) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `UPDATE posts
                   SET archived = TRUE, moderation_status = $1, toxicity_score = $2, matched_keywords = $3
                   WHERE id = $4`
		if _, err := tx.ExecContext(ctx, query, post.ModerationFlagged, score, pq.Array(keywords), id); err != nil {
			return fmt.Errorf("error flagging post %d: %w", id, err)
		}
		return nil
	})
}
