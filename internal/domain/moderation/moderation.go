package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"recovery_notification_engine/internal/domain/storage"
)

// ReviewStatus tracks whether a human moderator has dealt with an entry.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewResolved ReviewStatus = "resolved"
)

// SourceAuto marks artifacts produced by the automatic moderation pass,
// as opposed to human-filed reports.
const SourceAuto = "auto"

// QueueEntry is one item in the moderation review queue, created once
// per flagged post.
type QueueEntry struct {
	ID              uuid.UUID
	PostID          int64
	AuthorID        int64
	ToxicityScore   float64
	MatchedKeywords []string
	ReviewStatus    ReviewStatus
	Source          string
	AssignedTo      sql.NullInt64
	CreatedAt       time.Time
}

// Report mirrors a queue entry so automatic flags line up with
// human-created reports in the review UI.
type Report struct {
	ID              uuid.UUID
	PostID          int64
	AuthorID        int64
	ToxicityScore   float64
	MatchedKeywords []string
	Status          ReviewStatus
	Source          string
	CreatedAt       time.Time
}

// Repository defines persistence for moderation artifacts. Both writes
// are staged: a queue entry never exists without its report, flagged
// post and admin notifications.
type Repository interface {
	StageCreateQueueEntry(b storage.Batch, e *QueueEntry)
	StageCreateReport(b storage.Batch, r *Report)
}
