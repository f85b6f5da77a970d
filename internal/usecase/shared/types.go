package shared

import (
	"time"

	"campus-placement/internal/domain/event"

	"github.com/google/uuid"
)

// OutboxEntry is one committed transition waiting to be announced. Seq orders
// entries of the same aggregate; only the dispatcher writes PublishedAt.
type OutboxEntry struct {
	ID           uuid.UUID
	Seq          int64
	AggregateID  uuid.UUID
	EventType    event.Type
	Payload      []byte
	CommittedAt  time.Time
	PublishedAt  *time.Time
	AttemptCount int
	LastError    string
}

func NewOutboxEntry(desc event.Description, now time.Time) (OutboxEntry, error) {
	payload, err := event.Encode(desc.Envelope)
	if err != nil {
		return OutboxEntry{}, err
	}
	return OutboxEntry{
		ID:          uuid.New(),
		AggregateID: desc.Envelope.ApplicationID,
		EventType:   desc.Envelope.Type,
		Payload:     payload,
		CommittedAt: now,
	}, nil
}
