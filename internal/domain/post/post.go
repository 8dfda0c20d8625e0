package post

import (
	"time"

	"recovery_notification_engine/internal/domain/storage"
)

// ModerationStatus tracks how far a post has travelled through the
// automatic moderation pass.
type ModerationStatus string

const (
	ModerationNone    ModerationStatus = "none"
	ModerationPending ModerationStatus = "pending"
	ModerationFlagged ModerationStatus = "flagged"
)

// Post is a member's community post. The moderation trigger runs exactly
// once, on creation; re-edits do not re-fire it.
type Post struct {
	ID               int64
	AuthorID         int64
	Title            string
	Body             string
	ModerationStatus ModerationStatus
	ToxicityScore    float64
	MatchedKeywords  []string
	Archived         bool
	CreatedAt        time.Time
}

// Repository defines the single write the moderation trigger performs
// on a post.
type Repository interface {
	// StageFlag stages archiving the post with its moderation verdict.
	StageFlag(b storage.Batch, id int64, score float64, keywords []string)
}
