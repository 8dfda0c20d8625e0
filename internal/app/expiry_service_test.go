package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"recovery_notification_engine/internal/domain/document"
)

func newExpiryFixture(docs []*document.Document) (*ExpiryService, *fakeNotificationRepo) {
	docRepo := &fakeDocumentRepo{docs: docs}
	notifRepo := &fakeNotificationRepo{}
	s := NewExpiryService(docRepo, notifRepo, &memBatchFactory{}, DefaultExpiryConfig(), testLogger())
	return s, notifRepo
}

func TestExpirySweep_SelectsClosestInterval(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	doc := &document.Document{
		ID: 1, UserID: 7, Name: "State ID",
		ExpiresAt: now.Add(5 * 24 * time.Hour), // daysUntilExpiry = 5
		Status:    document.StatusActive,
	}
	s, notifRepo := newExpiryFixture([]*document.Document{doc})
	s.now = func() time.Time { return now }

	if err := s.ProcessDocumentExpirations(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if len(doc.WarningsSent) != 1 || doc.WarningsSent[0] != 7 {
		t.Fatalf("expected the 7-day interval, got %v", doc.WarningsSent)
	}
	if len(notifRepo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifRepo.created))
	}
	if body := notifRepo.created[0].Body; !strings.Contains(body, "5 days") {
		t.Errorf("body should mention days until expiry, got %q", body)
	}
	if doc.Status != document.StatusActive {
		t.Error("a not-yet-expired document must keep its status")
	}
}

func TestExpirySweep_ExpiredDocument(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	doc := &document.Document{
		ID: 1, UserID: 7, Name: "Lease agreement",
		ExpiresAt: now.Add(-3 * 24 * time.Hour), // daysUntilExpiry = -3
		Status:    document.StatusActive,
	}
	s, notifRepo := newExpiryFixture([]*document.Document{doc})
	s.now = func() time.Time { return now }

	if err := s.ProcessDocumentExpirations(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if doc.Status != document.StatusExpired {
		t.Error("status must flip to expired")
	}
	if len(doc.WarningsSent) != 1 || doc.WarningsSent[0] != 0 {
		t.Fatalf("expected the 0-day interval, got %v", doc.WarningsSent)
	}
	if len(notifRepo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifRepo.created))
	}
	if body := notifRepo.created[0].Body; !strings.Contains(body, "has expired") {
		t.Errorf("expired documents get the expired body variant, got %q", body)
	}
}

func TestExpirySweep_RepeatedRunSendsNothingNew(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	doc := &document.Document{
		ID: 1, UserID: 7, Name: "Certification",
		ExpiresAt: now.Add(5 * 24 * time.Hour),
		Status:    document.StatusActive,
	}
	s, notifRepo := newExpiryFixture([]*document.Document{doc})
	s.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if err := s.ProcessDocumentExpirations(context.Background()); err != nil {
			t.Fatalf("sweep %d: %v", i, err)
		}
	}

	if len(doc.WarningsSent) != 1 {
		t.Errorf("repeated sweep recorded intervals %v, want exactly one", doc.WarningsSent)
	}
	if len(notifRepo.created) != 1 {
		t.Errorf("repeated sweep produced %d notifications, want 1", len(notifRepo.created))
	}
}

func TestExpirySweep_SkippedIntervalsAreLost(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	// Jumped from outside the horizon to 10 days out (e.g. sweep downtime):
	// only the 14-day warning fires, the 30-day one is silently skipped.
	doc := &document.Document{
		ID: 1, UserID: 7, Name: "Insurance card",
		ExpiresAt: now.Add(10 * 24 * time.Hour),
		Status:    document.StatusActive,
	}
	s, notifRepo := newExpiryFixture([]*document.Document{doc})
	s.now = func() time.Time { return now }

	if err := s.ProcessDocumentExpirations(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if len(doc.WarningsSent) != 1 || doc.WarningsSent[0] != 14 {
		t.Fatalf("expected only the 14-day interval, got %v", doc.WarningsSent)
	}
	if len(notifRepo.created) != 1 {
		t.Errorf("expected exactly one warning, got %d", len(notifRepo.created))
	}
}

func TestSelectWarningInterval(t *testing.T) {
	intervals := document.DefaultWarningIntervals()

	tests := []struct {
		name  string
		days  int
		want  int
		found bool
	}{
		{name: "five days picks seven", days: 5, want: 7, found: true},
		{name: "exactly on a mark", days: 14, want: 14, found: true},
		{name: "expired picks zero", days: -3, want: 0, found: true},
		{name: "today picks zero", days: 0, want: 0, found: true},
		{name: "between fourteen and thirty", days: 20, want: 30, found: true},
		{name: "outside the ladder", days: 45, found: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := selectWarningInterval(intervals, tc.days)
			if found != tc.found {
				t.Fatalf("selectWarningInterval(%d) found = %v, want %v", tc.days, found, tc.found)
			}
			if found && got != tc.want {
				t.Errorf("selectWarningInterval(%d) = %d, want %d", tc.days, got, tc.want)
			}
		})
	}
}
