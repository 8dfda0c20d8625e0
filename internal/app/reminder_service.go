package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"recovery_notification_engine/internal/domain/appointment"
	"recovery_notification_engine/internal/domain/notification"
	"recovery_notification_engine/internal/domain/push"
	"recovery_notification_engine/internal/domain/storage"
	"recovery_notification_engine/internal/domain/user"
	idb "recovery_notification_engine/internal/infra/database"
	"recovery_notification_engine/internal/timewindow"
)

// ReminderConfig holds the fixed parameters of the appointment reminder
// sweep. It is immutable after construction.
type ReminderConfig struct {
	Thresholds []appointment.Threshold
	Tolerance  time.Duration
	Lookahead  time.Duration
}

// DefaultReminderConfig matches the reference deployment: a 15-minute
// sweep cadence with a 16-minute tolerance and a 24-hour lookahead.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Thresholds: appointment.DefaultThresholds(),
		Tolerance:  timewindow.DefaultTolerance,
		Lookahead:  24 * time.Hour,
	}
}

// ReminderService implements the appointment reminder sweep.
type ReminderService struct {
	appointments  appointment.Repository
	notifications notification.Repository
	users         user.Repository
	batches       storage.BatchFactory
	pushClient    push.Client
	cfg           ReminderConfig
	logger        *logrus.Logger
	now           func() time.Time
}

func NewReminderService(
	ar appointment.Repository,
	nr notification.Repository,
	ur user.Repository,
	bf storage.BatchFactory,
	pc push.Client,
	cfg ReminderConfig,
	logger *logrus.Logger,
) *ReminderService {
	return &ReminderService{
		appointments:  ar,
		notifications: nr,
		users:         ur,
		batches:       bf,
		pushClient:    pc,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// ProcessAppointmentReminders scans upcoming appointments and fires any
// reminder threshold that newly entered the sweep window. The per-
// threshold sent flag, not push delivery success, is the source of truth
// for "don't resend": the flag and the in-app notification commit in one
// batch, and the push attempt happens only after that batch succeeds.
func (s *ReminderService) ProcessAppointmentReminders(ctx context.Context) error {
	now := s.now()
	from := now.Add(-s.cfg.Tolerance)
	until := now.Add(s.cfg.Lookahead + s.cfg.Tolerance)

	appts, err := s.appointments.ListUpcoming(ctx, from, until)
	if err != nil {
		return fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	if len(appts) == 0 {
		s.logger.Debug("Appointment sweep found nothing upcoming.")
		return nil
	}
	s.logger.Infof("Appointment sweep evaluating %d appointment(s).", len(appts))

	for _, a := range appts {
		s.processAppointment(ctx, a, now)
	}
	return nil
}

type firedReminder struct {
	kind  appointment.ReminderKind
	notif *notification.Notification
}

func (s *ReminderService) processAppointment(ctx context.Context, a *appointment.Appointment, now time.Time) {
	owner, err := s.users.GetByID(ctx, a.UserID)
	if err != nil {
		if errors.Is(err, idb.ErrUserNotFound) {
			s.logger.Warnf("Owner %d of appointment %d not found. Skipping its reminders this sweep.", a.UserID, a.ID)
		} else {
			s.logger.Errorf("Failed to load owner %d of appointment %d: %v", a.UserID, a.ID, err)
		}
		return
	}

	batch := s.batches.NewBatch()
	var fired []firedReminder

	for _, th := range s.cfg.Thresholds {
		if a.ReminderSent(th.Kind) {
			continue
		}
		if !timewindow.Due(now, a.ScheduledAt, th.Offset, s.cfg.Tolerance) {
			continue
		}

		n := notification.New(
			a.UserID,
			notification.TypeAppointmentReminder,
			reminderPriority(th.Kind),
			"Upcoming appointment",
			reminderBody(a, th.Kind),
			strconv.FormatInt(a.ID, 10),
			notification.RefTypeAppointment,
		)
		s.appointments.StageReminderSent(batch, a.ID, th.Kind)
		s.notifications.StageCreate(batch, n)
		fired = append(fired, firedReminder{kind: th.Kind, notif: n})
	}

	if batch.Len() == 0 {
		return
	}
	if err := batch.Commit(ctx); err != nil {
		s.logger.Errorf("Failed to commit reminder batch for appointment %d: %v", a.ID, err)
		return
	}

	for _, f := range fired {
		s.logger.Infof("Reminder %s fired for appointment %d (user %d).", f.kind, a.ID, a.UserID)
		if !owner.PushToken.Valid {
			s.logger.Debugf("User %d has no push token. In-app notification only.", a.UserID)
			continue
		}
		err := s.pushClient.Send(ctx, owner.PushToken.String, f.notif.Title, f.notif.Body, map[string]string{
			"type":           string(f.notif.Type),
			"reference_id":   f.notif.ReferenceID,
			"reference_type": f.notif.ReferenceType,
		})
		if err != nil {
			s.logger.Warnf("Push delivery of %s reminder for appointment %d failed: %v", f.kind, a.ID, err)
		}
	}
}

func reminderPriority(kind appointment.ReminderKind) notification.Priority {
	if kind == appointment.Reminder15m {
		return notification.PriorityHigh
	}
	return notification.PriorityNormal
}

func reminderBody(a *appointment.Appointment, kind appointment.ReminderKind) string {
	when := a.ScheduledAt.Format("Mon Jan 2 at 3:04 PM")
	switch kind {
	case appointment.Reminder24h:
		return fmt.Sprintf("%s is tomorrow, %s.", a.Title, when)
	case appointment.Reminder1h:
		return fmt.Sprintf("%s starts in about an hour, %s.", a.Title, when)
	case appointment.Reminder15m:
		return fmt.Sprintf("%s starts in 15 minutes.", a.Title)
	}
	return fmt.Sprintf("%s is coming up, %s.", a.Title, when)
}
