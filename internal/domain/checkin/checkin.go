package checkin

import (
	"time"

	"recovery_notification_engine/internal/domain/storage"
)

// Mood is the member's self-reported mood on a wellness check-in.
type Mood string

const (
	MoodGreat      Mood = "great"
	MoodGood       Mood = "good"
	MoodOkay       Mood = "okay"
	MoodStruggling Mood = "struggling"
	MoodCrisis     Mood = "crisis"
)

// Checkin is a single wellness check-in. The crisis trigger runs once,
// on creation, and may set CrisisDetected and CrisisReason.
type Checkin struct {
	ID               int64
	UserID           int64
	Mood             Mood
	CravingIntensity int
	CrisisDetected   bool
	CrisisReason     string
	CreatedAt        time.Time
}

// Repository defines the single write the crisis trigger performs on a
// check-in.
type Repository interface {
	// StageMarkCrisis stages flagging the check-in as a detected crisis
	// with a human-readable reason.
	StageMarkCrisis(b storage.Batch, id int64, reason string)
}
