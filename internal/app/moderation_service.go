package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"recovery_notification_engine/internal/domain/moderation"
	"recovery_notification_engine/internal/domain/notification"
	"recovery_notification_engine/internal/domain/post"
	"recovery_notification_engine/internal/domain/storage"
	"recovery_notification_engine/internal/domain/user"
)

// ModerationConfig holds the flagging threshold and the admin fan-out cap.
type ModerationConfig struct {
	Threshold        float64
	AdminFanoutLimit int
}

// DefaultModerationConfig matches the reference deployment.
func DefaultModerationConfig() ModerationConfig {
	return ModerationConfig{
		Threshold:        0.5,
		AdminFanoutLimit: 10,
	}
}

// ModerationService implements the moderation trigger fired once per
// post-creation event.
type ModerationService struct {
	posts         post.Repository
	moderations   moderation.Repository
	notifications notification.Repository
	users         user.Repository
	batches       storage.BatchFactory
	scorer        *moderation.Scorer
	cfg           ModerationConfig
	logger        *logrus.Logger
	now           func() time.Time
}

func NewModerationService(
	pr post.Repository,
	mr moderation.Repository,
	nr notification.Repository,
	ur user.Repository,
	bf storage.BatchFactory,
	scorer *moderation.Scorer,
	cfg ModerationConfig,
	logger *logrus.Logger,
) *ModerationService {
	return &ModerationService{
		posts:         pr,
		moderations:   mr,
		notifications: nr,
		users:         ur,
		batches:       bf,
		scorer:        scorer,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// ProcessNewPost scores the post's combined title and body. A score at
// or below the threshold passes; strictly above it, the post is archived
// and a queue entry, a mirroring report and one notification per admin
// (bounded) are created in a single batch. Either all of it commits or
// none of it does: a post is never flagged without its queue entry and
// admin notifications.
func (s *ModerationService) ProcessNewPost(ctx context.Context, p *post.Post) error {
	text := strings.TrimSpace(p.Title + " " + p.Body)
	if text == "" {
		s.logger.Debugf("Post %d has no text content. Skipping moderation.", p.ID)
		return nil
	}

	score := s.scorer.Score(text)
	if score <= s.cfg.Threshold {
		s.logger.Infof("Post %d passed moderation (score %.2f, threshold %.2f).", p.ID, score, s.cfg.Threshold)
		return nil
	}
	keywords := s.scorer.MatchedKeywords(text)

	admins, err := s.users.ListAdmins(ctx, s.cfg.AdminFanoutLimit)
	if err != nil {
		return fmt.Errorf("failed to list admins for moderation fan-out: %w", err)
	}
	if len(admins) == 0 {
		s.logger.Warnf("No admin users found. Post %d will be flagged without notifications.", p.ID)
	}

	createdAt := s.now().UTC()
	entry := &moderation.QueueEntry{
		ID:              uuid.New(),
		PostID:          p.ID,
		AuthorID:        p.AuthorID,
		ToxicityScore:   score,
		MatchedKeywords: keywords,
		ReviewStatus:    moderation.ReviewPending,
		Source:          moderation.SourceAuto,
		CreatedAt:       createdAt,
	}
	report := &moderation.Report{
		ID:              uuid.New(),
		PostID:          p.ID,
		AuthorID:        p.AuthorID,
		ToxicityScore:   score,
		MatchedKeywords: keywords,
		Status:          moderation.ReviewPending,
		Source:          moderation.SourceAuto,
		CreatedAt:       createdAt,
	}

	batch := s.batches.NewBatch()
	s.posts.StageFlag(batch, p.ID, score, keywords)
	s.moderations.StageCreateQueueEntry(batch, entry)
	s.moderations.StageCreateReport(batch, report)
	for _, admin := range admins {
		n := notification.New(
			admin.ID,
			notification.TypeModerationAlert,
			notification.PriorityHigh,
			"Post flagged for review",
			fmt.Sprintf("A post by user %d was auto-flagged (score %.2f). It is waiting in the moderation queue.", p.AuthorID, score),
			entry.ID.String(),
			notification.RefTypeModerationEntry,
		)
		s.notifications.StageCreate(batch, n)
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit moderation batch for post %d: %w", p.ID, err)
	}
	s.logger.Infof("Post %d flagged (score %.2f, %d keyword(s), %d admin(s) notified).", p.ID, score, len(keywords), len(admins))
	return nil
}
