package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AppointmentSweeper runs the appointment reminder sweep.
type AppointmentSweeper interface {
	ProcessAppointmentReminders(ctx context.Context) error
}

// DocumentSweeper runs the document expiration sweep.
type DocumentSweeper interface {
	ProcessDocumentExpirations(ctx context.Context) error
}

// SweepScheduler drives the two time-based procedures on cron schedules.
// Sweep invocations are stateless; overlapping runs across window
// boundaries are expected and made safe by the sweeps' idempotency flags.
type SweepScheduler struct {
	cronEngine           *cron.Cron
	appointments         AppointmentSweeper
	documents            DocumentSweeper
	logger               *logrus.Logger
	cronSpecAppointments string
	cronSpecDocuments    string
}

func NewSweepScheduler(
	appointments AppointmentSweeper,
	documents DocumentSweeper,
	logger *logrus.Logger,
	location *time.Location,
	cronSpecAppointments string, // e.g., "*/15 * * * *" (every 15 minutes)
	cronSpecDocuments string, // e.g., "0 9 * * *" (daily at 9 AM)
) *SweepScheduler {
	return &SweepScheduler{
		cronEngine:           cron.New(cron.WithLocation(location)),
		appointments:         appointments,
		documents:            documents,
		logger:               logger,
		cronSpecAppointments: cronSpecAppointments,
		cronSpecDocuments:    cronSpecDocuments,
	}
}

func (s *SweepScheduler) Start() {
	s.logger.Info("Starting sweep scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecAppointments, func() {
		s.logger.Debug("Cron job triggered for appointment reminder sweep.")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.appointments.ProcessAppointmentReminders(ctx); err != nil {
			s.logger.Errorf("Error during appointment reminder sweep: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add appointment sweep cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecDocuments, func() {
		s.logger.Debug("Cron job triggered for document expiration sweep.")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute) // Longer timeout, whole-collection scan
		defer cancel()
		if err := s.documents.ProcessDocumentExpirations(ctx); err != nil {
			s.logger.Errorf("Error during document expiration sweep: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add document sweep cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Sweep scheduler started with jobs.")
}

func (s *SweepScheduler) Stop() {
	s.logger.Info("Stopping sweep scheduler...")
	ctx := s.cronEngine.Stop() // Stops scheduling new runs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Sweep scheduler gracefully stopped.")
}
