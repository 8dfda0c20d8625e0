package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"recovery_notification_engine/internal/domain/agentsession"
	"recovery_notification_engine/internal/domain/checkin"
	"recovery_notification_engine/internal/domain/notification"
	"recovery_notification_engine/internal/domain/push"
	"recovery_notification_engine/internal/domain/storage"
	"recovery_notification_engine/internal/domain/user"
	idb "recovery_notification_engine/internal/infra/database"
)

// CrisisConfig holds the crisis classification thresholds, the admin
// fallback cap and the hotline text sent to the member.
type CrisisConfig struct {
	CravingThreshold int
	AdminFanoutLimit int
	HotlineInfo      string
}

// DefaultCrisisConfig matches the reference deployment: craving 8 of 10
// classifies as crisis, admin fallback capped at 10.
func DefaultCrisisConfig() CrisisConfig {
	return CrisisConfig{
		CravingThreshold: 8,
		AdminFanoutLimit: 10,
		HotlineInfo:      "If you need immediate support, call or text 988 (Suicide & Crisis Lifeline) or text HOME to 741741. You are not alone.",
	}
}

// CrisisService implements the crisis trigger fired once per check-in
// creation event.
type CrisisService struct {
	checkins      checkin.Repository
	notifications notification.Repository
	users         user.Repository
	sessions      agentsession.Repository
	batches       storage.BatchFactory
	pushClient    push.Client
	cfg           CrisisConfig
	logger        *logrus.Logger
	now           func() time.Time
}

func NewCrisisService(
	cr checkin.Repository,
	nr notification.Repository,
	ur user.Repository,
	sr agentsession.Repository,
	bf storage.BatchFactory,
	pc push.Client,
	cfg CrisisConfig,
	logger *logrus.Logger,
) *CrisisService {
	return &CrisisService{
		checkins:      cr,
		notifications: nr,
		users:         ur,
		sessions:      sr,
		batches:       bf,
		pushClient:    pc,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// ProcessNewCheckin classifies the check-in and, on crisis, routes one
// urgent alert to the assigned case manager — or to a bounded pool of
// admins when none is assigned, so a member in crisis is never silently
// unrouted. A supportive self-notification with hotline contacts and the
// crisis flag on the check-in commit in the same batch. Only after that
// batch succeeds does the best-effort agent-session step run; its
// failure is logged and swallowed.
func (s *CrisisService) ProcessNewCheckin(ctx context.Context, c *checkin.Checkin) error {
	reason, isCrisis := s.classify(c)
	if !isCrisis {
		s.logger.Debugf("Check-in %d for user %d is not a crisis (mood %s, craving %d).", c.ID, c.UserID, c.Mood, c.CravingIntensity)
		return nil
	}
	s.logger.Infof("Crisis detected on check-in %d for user %d: %s", c.ID, c.UserID, reason)

	member, err := s.users.GetByID(ctx, c.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user %d for crisis routing: %w", c.UserID, err)
	}

	recipients, err := s.resolveRecipients(ctx, member)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Warnf("No case manager and no admins available. Crisis for user %d will only produce the self-support notification.", c.UserID)
	}

	refID := strconv.FormatInt(c.ID, 10)
	alertBody := fmt.Sprintf("User %d reported a crisis on their wellness check-in: %s", c.UserID, reason)

	batch := s.batches.NewBatch()
	alerts := make([]*notification.Notification, 0, len(recipients))
	for _, r := range recipients {
		n := notification.New(
			r.ID,
			notification.TypeCrisisAlert,
			notification.PriorityUrgent,
			"Crisis check-in needs attention",
			alertBody,
			refID,
			notification.RefTypeCheckin,
		)
		s.notifications.StageCreate(batch, n)
		alerts = append(alerts, n)
	}

	// The member always receives the supportive notification, whether
	// the alert went to a case manager or the admin fallback.
	selfSupport := notification.New(
		c.UserID,
		notification.TypeCrisisSupport,
		notification.PriorityUrgent,
		"We're here for you",
		s.cfg.HotlineInfo,
		refID,
		notification.RefTypeCheckin,
	)
	s.notifications.StageCreate(batch, selfSupport)
	s.checkins.StageMarkCrisis(batch, c.ID, reason)

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit crisis batch for check-in %d: %w", c.ID, err)
	}

	// Everything past this point is strictly additive: the notifications
	// above are already durable.
	s.ensureCrisisSession(ctx, c.UserID, reason)
	for i, r := range recipients {
		if !r.PushToken.Valid {
			continue
		}
		n := alerts[i]
		err := s.pushClient.Send(ctx, r.PushToken.String, n.Title, n.Body, map[string]string{
			"type":           string(n.Type),
			"reference_id":   n.ReferenceID,
			"reference_type": n.ReferenceType,
		})
		if err != nil {
			s.logger.Warnf("Push delivery of crisis alert for check-in %d to user %d failed: %v", c.ID, r.ID, err)
		}
	}
	return nil
}

// classify builds the reason string enumerating every condition that
// fired.
func (s *CrisisService) classify(c *checkin.Checkin) (string, bool) {
	var reasons []string
	if c.Mood == checkin.MoodCrisis {
		reasons = append(reasons, `mood reported as "crisis"`)
	}
	if c.CravingIntensity >= s.cfg.CravingThreshold {
		reasons = append(reasons, fmt.Sprintf("craving intensity %d at or above threshold %d", c.CravingIntensity, s.cfg.CravingThreshold))
	}
	if len(reasons) == 0 {
		return "", false
	}
	return strings.Join(reasons, "; "), true
}

// resolveRecipients applies the escalation tie-break: the assigned case
// manager if one exists and can be loaded, otherwise the bounded admin
// pool.
func (s *CrisisService) resolveRecipients(ctx context.Context, member *user.User) ([]*user.User, error) {
	if member.CaseManagerID.Valid {
		cm, err := s.users.GetByID(ctx, member.CaseManagerID.Int64)
		if err == nil {
			return []*user.User{cm}, nil
		}
		if errors.Is(err, idb.ErrUserNotFound) {
			s.logger.Warnf("Assigned case manager %d for user %d not found. Falling back to admin pool.", member.CaseManagerID.Int64, member.ID)
		} else {
			return nil, fmt.Errorf("failed to load case manager %d: %w", member.CaseManagerID.Int64, err)
		}
	}

	admins, err := s.users.ListAdmins(ctx, s.cfg.AdminFanoutLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins for crisis fallback: %w", err)
	}
	return admins, nil
}

// ensureCrisisSession creates an automated support session unless an
// active crisis-kind session already exists for the user. Any failure
// here is logged and swallowed; the committed notifications are never
// rolled back or blocked by this step.
func (s *CrisisService) ensureCrisisSession(ctx context.Context, userID int64, reason string) {
	existing, err := s.sessions.FindActive(ctx, userID, agentsession.KindCrisis)
	if err == nil && existing != nil {
		s.logger.Debugf("User %d already has active crisis session %s. Skipping creation.", userID, existing.ID)
		return
	}
	if err != nil && !errors.Is(err, idb.ErrSessionNotFound) {
		s.logger.Warnf("Could not check for an existing crisis session for user %d: %v", userID, err)
		return
	}

	sess := &agentsession.Session{
		ID:            uuid.New(),
		UserID:        userID,
		Kind:          agentsession.KindCrisis,
		Status:        agentsession.StatusActive,
		TriggerReason: reason,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.logger.Warnf("Failed to create crisis session for user %d: %v", userID, err)
		return
	}
	s.logger.Infof("Crisis session %s created for user %d.", sess.ID, userID)
}
