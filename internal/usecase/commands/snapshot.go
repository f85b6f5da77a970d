package commands

import (
	"context"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/event"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
)

// lockSnapshot takes the application's row lock and loads everything a
// transition is decided against. The lock is held until the transaction ends,
// so concurrent commands on one application are serialized here.
func lockSnapshot(ctx context.Context, tx shared.Tx, applicationID uuid.UUID) (application.Snapshot, error) {
	app, err := tx.Applications().GetForUpdate(ctx, applicationID)
	if err != nil {
		return application.Snapshot{}, notFoundAs(err, application.ErrNotFound)
	}

	opp, err := tx.Reads().OpportunityByID(ctx, app.OpportunityID)
	if err != nil {
		return application.Snapshot{}, errs.Wrap(err, "load opportunity")
	}

	candidate, err := tx.Reads().CandidateByID(ctx, app.CandidateID)
	if err != nil {
		if !errs.Is(err, errs.ErrNotFound) {
			return application.Snapshot{}, errs.Wrap(err, "load candidate profile")
		}
		// Display-only data; a missing profile must not block a transition.
		candidate.CandidateID = app.CandidateID
	}

	rounds, err := tx.Rounds().ListByApplication(ctx, app.ID)
	if err != nil {
		return application.Snapshot{}, errs.Wrap(err, "load rounds")
	}

	existing, err := tx.Offers().GetByApplication(ctx, app.ID)
	if err != nil {
		return application.Snapshot{}, errs.Wrap(err, "load offer")
	}

	return application.Snapshot{
		Application: app,
		Rounds:      rounds,
		Opportunity: opp,
		Candidate:   candidate,
		HasOffer:    existing != nil,
	}, nil
}

// record appends the transition's event to the outbox in the caller's transaction.
func record(ctx context.Context, tx shared.Tx, desc event.Description, now time.Time) (uuid.UUID, error) {
	entry, err := shared.NewOutboxEntry(desc, now)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Outbox().Append(ctx, entry); err != nil {
		return uuid.Nil, errs.Wrap(err, "append outbox entry")
	}
	return entry.ID, nil
}

// notFoundAs replaces a store-level not-found with the domain's own error so
// callers see "application not found" rather than a repository message.
func notFoundAs(err, domainErr error) error {
	if errs.Is(err, errs.ErrNotFound) {
		return domainErr
	}
	return err
}
