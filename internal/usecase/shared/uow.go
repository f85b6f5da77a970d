package shared

import (
	"context"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/opportunity"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: commit on nil, rollback on error or panic. Serialization failures and
	// transient store errors re-run fn from the start.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Applications() ApplicationRepository
	Rounds() RoundRepository
	Offers() OfferRepository
	Outbox() OutboxRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// CommandReads exposes data owned by other services. Read-only from this core.
type CommandReads interface {
	OpportunityByID(ctx context.Context, id uuid.UUID) (opportunity.Opportunity, error)
	CandidateByID(ctx context.Context, id uuid.UUID) (opportunity.CandidateProfile, error)
}

type ApplicationRepository interface {
	// Create fails with a DUPLICATE_KEY repository error when the (candidate, opportunity) pair exists.
	Create(ctx context.Context, app application.Application) error
	Get(ctx context.Context, id uuid.UUID) (application.Application, error)
	// GetForUpdate holds a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (application.Application, error)
	Update(ctx context.Context, app application.Application) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error)
}

type RoundRepository interface {
	// Upsert inserts or replaces the record keyed by (ApplicationID, RoundNumber).
	Upsert(ctx context.Context, r application.RoundRecord) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]application.RoundRecord, error)
}

type OfferRepository interface {
	// Upsert inserts or replaces the single offer of an application.
	Upsert(ctx context.Context, o offer.Offer) error
	Get(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	// GetByApplication returns nil without error when the application has no offer.
	GetByApplication(ctx context.Context, applicationID uuid.UUID) (*offer.Offer, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, e OutboxEntry) error
	Get(ctx context.Context, id uuid.UUID) (OutboxEntry, error)
	// PendingHeads lists the oldest unpublished entry of each aggregate, oldest
	// first, leaving out the aggregates in exclude.
	PendingHeads(ctx context.Context, limit int, exclude []uuid.UUID) ([]OutboxEntry, error)
	// ClaimHead locks id for this transaction if it is still the unpublished head of
	// its aggregate. ok is false when another worker holds it or it is no longer pending.
	ClaimHead(ctx context.Context, id uuid.UUID) (entry OutboxEntry, ok bool, err error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	RecordFailure(ctx context.Context, id uuid.UUID, lastError string) error
	CountPending(ctx context.Context) (int, error)
}

type NotificationRepository interface {
	// InsertIfAbsent is idempotent on (OutboxID, RecipientID).
	InsertIfAbsent(ctx context.Context, n notification.Notification) (inserted bool, err error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error)
	// MarkRead reports false when id does not exist or belongs to someone else.
	MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (bool, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
}

// CommitNotifier is kicked after a transaction that wrote an outbox entry commits.
type CommitNotifier interface {
	Notify()
}
