package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recovery_notification_engine/internal/domain/appointment"
	"recovery_notification_engine/internal/domain/storage"
)

var reminderColumns = map[appointment.ReminderKind]string{
	appointment.Reminder24h: "reminder_24h_sent",
	appointment.Reminder1h:  "reminder_1h_sent",
	appointment.Reminder15m: "reminder_15m_sent",
}

type PostgresAppointmentRepository struct {
	db *sql.DB
}

func NewPostgresAppointmentRepository(db *sql.DB) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

func (r *PostgresAppointmentRepository) ListUpcoming(ctx context.Context, from, until time.Time) ([]*appointment.Appointment, error) {
	query := `SELECT id, user_id, title, scheduled_at, status,
                      reminder_24h_sent, reminder_1h_sent, reminder_15m_sent,
                      created_at, updated_at
               FROM appointments
               WHERE status != $1 AND scheduled_at >= $2 AND scheduled_at <= $3
               ORDER BY scheduled_at`

	rows, err := r.db.QueryContext(ctx, query, appointment.StatusCancelled, from, until)
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming appointments: %w", err)
	}
	defer rows.Close()

	appts := make([]*appointment.Appointment, 0)
	for rows.Next() {
		a := &appointment.Appointment{}
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Title, &a.ScheduledAt, &a.Status,
			&a.Reminder24hSent, &a.Reminder1hSent, &a.Reminder15mSent,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}
	return appts, nil
}

func (r *PostgresAppointmentRepository) StageReminderSent(b storage.Batch, id int64, kind appointment.ReminderKind) {
	column, known := reminderColumns[kind]
	b.Stage(func(ctx context.Context, tx storage.Tx) error {
		if !known {
			return fmt.Errorf("unknown reminder kind: %s", kind)
		}
		// column comes from the fixed map above, never from input.
		query := fmt.Sprintf(`UPDATE appointments SET %s = TRUE, updated_at = NOW() WHERE id = $1`, column)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("error marking %s reminder sent for appointment %d: %w", kind, id, err)
		}
		return nil
	})
}
