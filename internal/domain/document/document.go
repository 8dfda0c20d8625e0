package document

import "time"

// Status represents the lifecycle state of an expiring document.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// DefaultWarningIntervals is the descending ladder of days-before-expiry
// marks at which an owner is warned. Zero covers the already-expired case.
func DefaultWarningIntervals() []int {
	return []int{30, 14, 7, 3, 1, 0}
}

// Document is a member's uploaded document with an expiry date (ID card,
// certification, lease, and so on). The expiration sweep appends to
// WarningsSent and flips Status to expired; creation and everything else
// belongs to the upload UI.
type Document struct {
	ID           int64
	UserID       int64
	Name         string
	ExpiresAt    time.Time
	Status       Status
	WarningsSent []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WarningSent reports whether the warning for the given interval has
// already been recorded for this document.
func (d *Document) WarningSent(interval int) bool {
	for _, sent := range d.WarningsSent {
		if sent == int64(interval) {
			return true
		}
	}
	return false
}
