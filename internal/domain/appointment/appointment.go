package appointment

import "time"

// Status represents the lifecycle state of an appointment.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ReminderKind identifies one of the configured reminder thresholds.
type ReminderKind string

const (
	Reminder24h ReminderKind = "24h"
	Reminder1h  ReminderKind = "1h"
	Reminder15m ReminderKind = "15m"
)

// Threshold pairs a reminder kind with the offset before the scheduled
// instant at which it fires.
type Threshold struct {
	Kind   ReminderKind
	Offset time.Duration
}

// DefaultThresholds returns the reminder ladder used by the sweep:
// one day, one hour and fifteen minutes before the appointment.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Kind: Reminder24h, Offset: 24 * time.Hour},
		{Kind: Reminder1h, Offset: time.Hour},
		{Kind: Reminder15m, Offset: 15 * time.Minute},
	}
}

// Appointment is a member's scheduled appointment. The reminder sweep
// only ever flips the per-threshold sent flags; everything else is
// owned by the member-facing application.
type Appointment struct {
	ID              int64
	UserID          int64
	Title           string
	ScheduledAt     time.Time
	Status          Status
	Reminder24hSent bool
	Reminder1hSent  bool
	Reminder15mSent bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReminderSent reports whether the reminder for the given kind has
// already been produced. The flags are the idempotency ledger: a set
// flag means the (appointment, threshold) pair fired, regardless of
// whether push delivery ultimately succeeded.
func (a *Appointment) ReminderSent(kind ReminderKind) bool {
	switch kind {
	case Reminder24h:
		return a.Reminder24hSent
	case Reminder1h:
		return a.Reminder1hSent
	case Reminder15m:
		return a.Reminder15mSent
	}
	return false
}

// MarkReminderSent sets the flag for the given kind on the in-memory
// record.
func (a *Appointment) MarkReminderSent(kind ReminderKind) {
	switch kind {
	case Reminder24h:
		a.Reminder24hSent = true
	case Reminder1h:
		a.Reminder1hSent = true
	case Reminder15m:
		a.Reminder15mSent = true
	}
}
