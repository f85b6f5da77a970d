package notification

import (
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/user"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Notification is the durable per-recipient echo of one outbox entry. It is
// never deleted; only IsRead/ReadAt change after creation.
type Notification struct {
	ID                   uuid.UUID
	OutboxID             uuid.UUID
	RecipientID          uuid.UUID
	RecipientRole        user.Role
	Title                string
	Message              string
	Category             string
	RelatedOpportunityID *uuid.UUID
	IsRead               bool
	CreatedAt            time.Time
	ReadAt               *time.Time
}

// IDFor derives a stable id from the outbox entry and recipient, so rebuilding
// the same notification always yields the same row.
func IDFor(outboxID, recipientID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(outboxID, recipientID[:])
}

// FromEvent renders the notification for one recipient of an outbox entry.
func FromEvent(outboxID uuid.UUID, e event.Envelope, r event.Recipient, now time.Time) (Notification, error) {
	content, err := event.Render(e, r)
	if err != nil {
		return Notification{}, err
	}
	n := Notification{
		ID:            IDFor(outboxID, r.ID),
		OutboxID:      outboxID,
		RecipientID:   r.ID,
		RecipientRole: r.Role,
		Title:         content.Title,
		Message:       content.Message,
		Category:      content.Category,
		CreatedAt:     now,
	}
	if e.OpportunityID != uuid.Nil {
		oppID := e.OpportunityID
		n.RelatedOpportunityID = &oppID
	}
	return n, nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
