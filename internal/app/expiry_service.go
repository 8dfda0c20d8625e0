package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"recovery_notification_engine/internal/domain/document"
	"recovery_notification_engine/internal/domain/notification"
	"recovery_notification_engine/internal/domain/storage"
)

// ExpiryConfig holds the fixed parameters of the document expiration
// sweep.
type ExpiryConfig struct {
	Horizon          time.Duration
	WarningIntervals []int // descending days-before-expiry marks
}

// DefaultExpiryConfig matches the reference deployment: a 30-day warning
// horizon swept once daily.
func DefaultExpiryConfig() ExpiryConfig {
	return ExpiryConfig{
		Horizon:          30 * 24 * time.Hour,
		WarningIntervals: document.DefaultWarningIntervals(),
	}
}

// ExpiryService implements the document expiration sweep.
type ExpiryService struct {
	documents     document.Repository
	notifications notification.Repository
	batches       storage.BatchFactory
	cfg           ExpiryConfig
	logger        *logrus.Logger
	now           func() time.Time
}

func NewExpiryService(
	dr document.Repository,
	nr notification.Repository,
	bf storage.BatchFactory,
	cfg ExpiryConfig,
	logger *logrus.Logger,
) *ExpiryService {
	return &ExpiryService{
		documents:     dr,
		notifications: nr,
		batches:       bf,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// ProcessDocumentExpirations scans documents expiring within the horizon.
// Per document it flips status to expired when the expiry instant has
// passed, and emits at most one warning: the one for the smallest
// configured interval covering daysUntilExpiry, skipped if that interval
// was already recorded. Intervals missed between sweeps (downtime) are
// silently lost; the owner still gets the most urgent applicable warning.
// All mutations for one document commit in a single batch.
func (s *ExpiryService) ProcessDocumentExpirations(ctx context.Context) error {
	now := s.now()

	docs, err := s.documents.ListExpiring(ctx, now.Add(s.cfg.Horizon))
	if err != nil {
		return fmt.Errorf("failed to list expiring documents: %w", err)
	}
	if len(docs) == 0 {
		s.logger.Debug("Document sweep found nothing inside the warning horizon.")
		return nil
	}
	s.logger.Infof("Document sweep evaluating %d document(s).", len(docs))

	for _, d := range docs {
		s.processDocument(ctx, d, now)
	}
	return nil
}

func (s *ExpiryService) processDocument(ctx context.Context, d *document.Document, now time.Time) {
	batch := s.batches.NewBatch()
	days := daysUntilExpiry(now, d.ExpiresAt)

	// The status flip is unconditional and independent of whether any
	// warning fires.
	if !d.ExpiresAt.After(now) && d.Status != document.StatusExpired {
		s.documents.StageMarkExpired(batch, d.ID)
		s.logger.Infof("Document %d (%q) has expired. Flipping status.", d.ID, d.Name)
	}

	if interval, ok := selectWarningInterval(s.cfg.WarningIntervals, days); ok {
		if d.WarningSent(interval) {
			s.logger.Debugf("Document %d already warned at the %d-day interval.", d.ID, interval)
		} else {
			n := notification.New(
				d.UserID,
				notification.TypeDocumentExpiry,
				expiryPriority(days),
				"Document expiration",
				expiryBody(d, days),
				strconv.FormatInt(d.ID, 10),
				notification.RefTypeDocument,
			)
			s.documents.StageWarningSent(batch, d.ID, interval)
			s.notifications.StageCreate(batch, n)
			s.logger.Infof("Document %d (%q): %d-day warning fired (%d day(s) until expiry).", d.ID, d.Name, interval, days)
		}
	}

	if batch.Len() == 0 {
		return
	}
	if err := batch.Commit(ctx); err != nil {
		s.logger.Errorf("Failed to commit expiration batch for document %d: %v", d.ID, err)
	}
}

// daysUntilExpiry is ceil((expiry - now) / 1 day); zero or negative once
// the document has expired.
func daysUntilExpiry(now, expiresAt time.Time) int {
	return int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
}

// selectWarningInterval walks the descending interval ladder and returns
// the smallest interval covering days (interval >= days). A document five
// days from expiry belongs to the 7-day band, not the 14- or 30-day one.
func selectWarningInterval(intervals []int, days int) (int, bool) {
	selected, found := 0, false
	for _, interval := range intervals {
		if interval >= days {
			selected, found = interval, true
		}
	}
	return selected, found
}

func expiryPriority(days int) notification.Priority {
	if days <= 3 {
		return notification.PriorityHigh
	}
	return notification.PriorityNormal
}

func expiryBody(d *document.Document, days int) string {
	if days <= 0 {
		return fmt.Sprintf("%s has expired. Please upload a current copy.", d.Name)
	}
	if days == 1 {
		return fmt.Sprintf("%s expires tomorrow.", d.Name)
	}
	return fmt.Sprintf("%s expires in %d days.", d.Name, days)
}
