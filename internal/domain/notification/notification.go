package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies which engine procedure produced a notification.
type Type string

const (
	TypeAppointmentReminder Type = "APPOINTMENT_REMINDER"
	TypeDocumentExpiry      Type = "DOCUMENT_EXPIRY"
	TypeModerationAlert     Type = "MODERATION_ALERT"
	TypeCrisisAlert         Type = "CRISIS_ALERT"
	TypeCrisisSupport       Type = "CRISIS_SUPPORT"
)

// Priority orders notifications in the member/admin inbox UI.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Reference types linking a notification back to its source record.
const (
	RefTypeAppointment     = "appointment"
	RefTypeDocument        = "document"
	RefTypeModerationEntry = "moderation_queue_entry"
	RefTypeCheckin         = "wellness_checkin"
)

// Notification is an append-only in-app notification record. The engine
// generates the id up front so a notification can be staged into a batch
// alongside the records it references. Only the read flag (owned by the
// UI) is ever mutated after creation.
type Notification struct {
	ID            uuid.UUID
	RecipientID   int64
	Type          Type
	Priority      Priority
	Title         string
	Body          string
	ReferenceID   string
	ReferenceType string
	Read          bool
	CreatedAt     time.Time
}

// New builds an unread notification with a fresh id.
func New(recipientID int64, typ Type, priority Priority, title, body, refID, refType string) *Notification {
	return &Notification{
		ID:            uuid.New(),
		RecipientID:   recipientID,
		Type:          typ,
		Priority:      priority,
		Title:         title,
		Body:          body,
		ReferenceID:   refID,
		ReferenceType: refType,
		CreatedAt:     time.Now().UTC(),
	}
}
