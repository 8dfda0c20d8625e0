package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"recovery_notification_engine/internal/domain/moderation"
	"recovery_notification_engine/internal/domain/storage"
)

type PostgresModerationRepository struct {
	db *sql.DB
}

func NewPostgresModerationRepository(db *sql.DB) *PostgresModerationRepository {
	return &PostgresModerationRepository{db: db}
}

func (r *PostgresModerationRepository) StageCreateQueueEntry(b storage.Batch, e *moderation.QueueEntry) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `INSERT INTO moderation_queue
                   (id, post_id, author_id, toxicity_score, matched_keywords, review_status, source, assigned_to, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		_, err := tx.ExecContext(ctx, query,
			e.ID, e.PostID, e.AuthorID, e.ToxicityScore, pq.Array(e.MatchedKeywords),
			e.ReviewStatus, e.Source, e.AssignedTo, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error creating moderation queue entry for post %d: %w", e.PostID, err)
		}
		return nil
	})
}

func (r *PostgresModerationRepository) StageCreateReport(b storage.Batch, rep *moderation.Report) {
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		query := `INSERT INTO moderation_reports
                   (id, post_id, author_id, toxicity_score, matched_keywords, status, source, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := tx.ExecContext(ctx, query,
			rep.ID, rep.PostID, rep.AuthorID, rep.ToxicityScore, pq.Array(rep.MatchedKeywords),
			rep.Status, rep.Source, rep.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error creating moderation report for post %d: %w", rep.PostID, err)
		}
		return nil
	})
}
