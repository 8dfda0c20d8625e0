package notification

import "recovery_notification_engine/internal/domain/storage"

// Repository defines notification persistence from the engine's side.
// Creation is always staged: a notification must commit atomically with
// the idempotency flag or moderation artifact it belongs to.
type Repository interface {
	StageCreate(b storage.Batch, n *Notification)
}
