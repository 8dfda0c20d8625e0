package database

import (
	"context"
	"database/sql"
	"fmt"

	"recovery_notification_engine/internal/domain/agentsession"
)

type PostgresAgentSessionRepository struct {
	db *sql.DB
}

func NewPostgresAgentSessionRepository(db *sql.DB) *PostgresAgentSessionRepository {
	return &PostgresAgentSessionRepository{db: db}
}

func (r *PostgresAgentSessionRepository) FindActive(ctx context.Context, userID int64, kind agentsession.Kind) (*agentsession.Session, error) {
	query := `SELECT id, user_id, kind, status, trigger_reason, created_at, updated_at
               FROM agent_sessions
               WHERE user_id = $1 AND kind = $2 AND status = $3
               ORDER BY created_at DESC LIMIT 1`

	s := &agentsession.Session{}
	err := r.db.QueryRowContext(ctx, query, userID, kind, agentsession.StatusActive).Scan(
		&s.ID, &s.UserID, &s.Kind, &s.Status, &s.TriggerReason, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error finding active %s session for user %d: %w", kind, userID, err)
	}
	return s, nil
}

func (r *PostgresAgentSessionRepository) Create(ctx context.Context, s *agentsession.Session) error {
	query := `INSERT INTO agent_sessions (id, user_id, kind, status, trigger_reason, created_at, updated_at)
               VALUES ($1, $2, $3, $4, $5, $6, $6)
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, s.ID, s.UserID, s.Kind, s.Status, s.TriggerReason, s.CreatedAt).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating %s session for user %d: %w", s.Kind, s.UserID, err)
	}
	return nil
}
