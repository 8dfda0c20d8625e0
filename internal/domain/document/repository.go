package document

import (
	"context"
	"time"

	"recovery_notification_engine/internal/domain/storage"
)

// Repository defines the persistence operations the expiration sweep needs.
type Repository interface {
	// ListExpiring returns non-expired documents whose expiry instant is
	// at or before the given cutoff.
	ListExpiring(ctx context.Context, until time.Time) ([]*Document, error)

	// StageMarkExpired stages flipping the document status to expired.
	StageMarkExpired(b storage.Batch, id int64)

	// StageWarningSent stages appending the interval to the document's
	// sent-warnings set.
	StageWarningSent(b storage.Batch, id int64, interval int)
}
