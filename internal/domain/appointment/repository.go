package appointment

import (
	"context"
	"time"

	"recovery_notification_engine/internal/domain/storage"
)

// Repository defines the persistence operations the reminder sweep
// needs. Writes are staged onto a batch so the flag update commits
// atomically with the notification record it corresponds to.
type Repository interface {
	// ListUpcoming returns non-cancelled appointments whose scheduled
	// instant falls within [from, until].
	ListUpcoming(ctx context.Context, from, until time.Time) ([]*Appointment, error)

	// StageReminderSent stages setting the sent flag for the given
	// reminder kind.
	StageReminderSent(b storage.Batch, id int64, kind ReminderKind)
}
