package app

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"recovery_notification_engine/internal/domain/agentsession"
	"recovery_notification_engine/internal/domain/appointment"
	"recovery_notification_engine/internal/domain/document"
	"recovery_notification_engine/internal/domain/moderation"
	"recovery_notification_engine/internal/domain/notification"
	"recovery_notification_engine/internal/domain/storage"
	"recovery_notification_engine/internal/domain/user"
	idb "recovery_notification_engine/internal/infra/database"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// memBatch executes staged ops against in-memory fakes. A commit error
// models the all-or-none contract: no op runs.
type memBatch struct {
	ops       []storage.Op
	commitErr error
}

func (b *memBatch) Stage(op storage.Op) { b.ops = append(b.ops, op) }
func (b *memBatch) Len() int            { return len(b.ops) }

func (b *memBatch) Commit(ctx context.Context) error {
	if b.commitErr != nil {
		return b.commitErr
	}
	for _, op := range b.ops {
		if err := op(ctx, nil); err != nil {
			return err
		}
	}
	return nil
}

type memBatchFactory struct {
	commitErr error
	committed int
}

func (f *memBatchFactory) NewBatch() storage.Batch {
	f.committed++
	return &memBatch{commitErr: f.commitErr}
}

// --- appointment fake ---

type fakeAppointmentRepo struct {
	appts []*appointment.Appointment
}

func (r *fakeAppointmentRepo) ListUpcoming(_ context.Context, from, until time.Time) ([]*appointment.Appointment, error) {
	out := make([]*appointment.Appointment, 0)
	for _, a := range r.appts {
		if a.Status == appointment.StatusCancelled {
			continue
		}
		if a.ScheduledAt.Before(from) || a.ScheduledAt.After(until) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) StageReminderSent(b storage.Batch, id int64, kind appointment.ReminderKind) {
	b.Stage(func(context.Context, storage.Tx) error {
		for _, a := range r.appts {
			if a.ID == id {
				a.MarkReminderSent(kind)
			}
		}
		return nil
	})
}

// --- document fake ---

type fakeDocumentRepo struct {
	docs []*document.Document
}

func (r *fakeDocumentRepo) ListExpiring(_ context.Context, until time.Time) ([]*document.Document, error) {
	out := make([]*document.Document, 0)
	for _, d := range r.docs {
		if d.Status == document.StatusExpired || d.ExpiresAt.After(until) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) StageMarkExpired(b storage.Batch, id int64) {
	b.Stage(func(context.Context, storage.Tx) error {
		for _, d := range r.docs {
			if d.ID == id {
				d.Status = document.StatusExpired
			}
		}
		return nil
	})
}

func (r *fakeDocumentRepo) StageWarningSent(b storage.Batch, id int64, interval int) {
	b.Stage(func(context.Context, storage.Tx) error {
		for _, d := range r.docs {
			if d.ID == id {
				d.WarningsSent = append(d.WarningsSent, int64(interval))
			}
		}
		return nil
	})
}

// --- notification fake ---

type fakeNotificationRepo struct {
	created []*notification.Notification
}

func (r *fakeNotificationRepo) StageCreate(b storage.Batch, n *notification.Notification) {
	b.Stage(func(context.Context, storage.Tx) error {
		r.created = append(r.created, n)
		return nil
	})
}

func (r *fakeNotificationRepo) byType(t notification.Type) []*notification.Notification {
	out := make([]*notification.Notification, 0)
	for _, n := range r.created {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// --- user fake ---

type fakeUserRepo struct {
	users  map[int64]*user.User
	admins []*user.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, idb.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListAdmins(_ context.Context, limit int) ([]*user.User, error) {
	if len(r.admins) > limit {
		return r.admins[:limit], nil
	}
	return r.admins, nil
}

// --- agent session fake ---

type fakeSessionRepo struct {
	sessions  []*agentsession.Session
	createErr error
	findErr   error
}

func (r *fakeSessionRepo) FindActive(_ context.Context, userID int64, kind agentsession.Kind) (*agentsession.Session, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.sessions {
		if s.UserID == userID && s.Kind == kind && s.Status == agentsession.StatusActive {
			return s, nil
		}
	}
	return nil, idb.ErrSessionNotFound
}

func (r *fakeSessionRepo) Create(_ context.Context, s *agentsession.Session) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.sessions = append(r.sessions, s)
	return nil
}

// --- post fake ---

type flaggedPost struct {
	score    float64
	keywords []string
}

type fakePostRepo struct {
	flagged map[int64]flaggedPost
}

func (r *fakePostRepo) StageFlag(b storage.Batch, id int64, score float64, keywords []string) {
	b.Stage(func(context.Context, storage.Tx) error {
		if r.flagged == nil {
			r.flagged = make(map[int64]flaggedPost)
		}
		r.flagged[id] = flaggedPost{score: score, keywords: keywords}
		return nil
	})
}

// --- checkin fake ---

type fakeCheckinRepo struct {
	marked map[int64]string
}

func (r *fakeCheckinRepo) StageMarkCrisis(b storage.Batch, id int64, reason string) {
	b.Stage(func(context.Context, storage.Tx) error {
		if r.marked == nil {
			r.marked = make(map[int64]string)
		}
		r.marked[id] = reason
		return nil
	})
}

// --- moderation fake ---

type fakeModerationRepo struct {
	entries []*moderation.QueueEntry
	reports []*moderation.Report
}

func (r *fakeModerationRepo) StageCreateQueueEntry(b storage.Batch, e *moderation.QueueEntry) {
	b.Stage(func(context.Context, storage.Tx) error {
		r.entries = append(r.entries, e)
		return nil
	})
}

func (r *fakeModerationRepo) StageCreateReport(b storage.Batch, rep *moderation.Report) {
	b.Stage(func(context.Context, storage.Tx) error {
		r.reports = append(r.reports, rep)
		return nil
	})
}

// --- push fake ---

type pushCall struct {
	token string
	title string
	body  string
	data  map[string]string
}

type fakePushClient struct {
	calls []pushCall
	err   error
}

func (c *fakePushClient) Send(_ context.Context, token, title, body string, data map[string]string) error {
	c.calls = append(c.calls, pushCall{token: token, title: title, body: body, data: data})
	return c.err
}
