package database

import (
	"context"
	"database/sql"
	"fmt"

	"recovery_notification_engine/internal/domain/user"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT id, first_name, role, case_manager_id, push_token, created_at, updated_at
               FROM users WHERE id = $1`

	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.Role, &u.CaseManagerID, &u.PushToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ListAdmins(ctx context.Context, limit int) ([]*user.User, error) {
	query := `SELECT id, first_name, role, case_manager_id, push_token, created_at, updated_at
               FROM users WHERE role = $1 ORDER BY id LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, user.RoleAdmin, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing admin users: %w", err)
	}
	defer rows.Close()

	admins := make([]*user.User, 0)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.FirstName, &u.Role, &u.CaseManagerID, &u.PushToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning admin user: %w", err)
		}
		admins = append(admins, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin users: %w", err)
	}
	return admins, nil
}
