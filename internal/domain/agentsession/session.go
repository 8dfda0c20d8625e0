package agentsession

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind classifies what spawned an automated support session.
type Kind string

const KindCrisis Kind = "crisis_support"

// Status is the session lifecycle state.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Session is an automated support session consumed by a separate
// subsystem. At most one active session of the crisis kind may exist per
// user; the crisis trigger checks before creating a new one.
type Session struct {
	ID            uuid.UUID
	UserID        int64
	Kind          Kind
	Status        Status
	TriggerReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository defines session persistence. Creation is deliberately NOT
// part of any batch: the session is a best-effort side channel created
// strictly after the crisis notifications have committed.
type Repository interface {
	// FindActive returns the active session of the given kind for the
	// user. Implementations return a not-found sentinel when none exists.
	FindActive(ctx context.Context, userID int64, kind Kind) (*Session, error)

	Create(ctx context.Context, s *Session) error
}
