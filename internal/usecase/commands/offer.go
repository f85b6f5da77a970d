package commands

import (
	"context"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/pkg/telemetry"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type CreateOfferRequest struct {
	ApplicationID     uuid.UUID
	Compensation      float64
	ProposedStartDate time.Time
}

type OfferResult struct {
	Offer       offer.Offer
	Application application.Application
	EventID     uuid.UUID
}

type OfferCommands interface {
	CreateOffer(ctx context.Context, req CreateOfferRequest, actor user.Identity) (*OfferResult, error)
	RespondToOffer(ctx context.Context, offerID uuid.UUID, decision offer.Decision, candidate user.Identity) (*OfferResult, error)
}

type offerUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	notifier shared.CommitNotifier
}

func NewOfferUseCase(uow shared.UnitOfWork, clk clock.Clock, notifier shared.CommitNotifier) OfferCommands {
	return &offerUseCaseImpl{uow: uow, clock: clk, notifier: notifier}
}

func (uc *offerUseCaseImpl) CreateOffer(ctx context.Context, req CreateOfferRequest, actor user.Identity) (_ *OfferResult, err error) {
	ctx, span := telemetry.Start(ctx, "commands.CreateOffer", attribute.String("application_id", req.ApplicationID.String()))
	defer func() { telemetry.End(span, err) }()

	terms, err := offer.NewTerms(req.Compensation, req.ProposedStartDate)
	if err != nil {
		return nil, err
	}

	var result OfferResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := lockSnapshot(ctx, tx, req.ApplicationID)
		if derr != nil {
			return derr
		}
		existing, derr := tx.Offers().GetByApplication(ctx, req.ApplicationID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		t, derr := offer.Create(snap, existing, terms, actor, uuid.New(), now)
		if derr != nil {
			return derr
		}
		if derr = tx.Offers().Upsert(ctx, t.Offer); derr != nil {
			return derr
		}
		eventID, derr := record(ctx, tx, t.Event, now)
		if derr != nil {
			return derr
		}
		result = OfferResult{Offer: t.Offer, Application: t.Application, EventID: eventID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify()
	return &result, nil
}

// RespondToOffer locks the application before the offer, the same order every
// other command uses, so two writers can never wait on each other.
func (uc *offerUseCaseImpl) RespondToOffer(ctx context.Context, offerID uuid.UUID, decision offer.Decision, candidate user.Identity) (_ *OfferResult, err error) {
	ctx, span := telemetry.Start(ctx, "commands.RespondToOffer", attribute.String("offer_id", offerID.String()))
	defer func() { telemetry.End(span, err) }()

	var result OfferResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		unlocked, derr := tx.Offers().Get(ctx, offerID)
		if derr != nil {
			return notFoundAs(derr, offer.ErrNotFound)
		}
		snap, derr := lockSnapshot(ctx, tx, unlocked.ApplicationID)
		if derr != nil {
			return notFoundAs(derr, offer.ErrNotFound)
		}
		current, derr := tx.Offers().GetForUpdate(ctx, offerID)
		if derr != nil {
			return notFoundAs(derr, offer.ErrNotFound)
		}

		now := uc.clock.Now()
		t, derr := offer.Respond(snap, current, candidate, decision, now)
		if derr != nil {
			return derr
		}
		if derr = tx.Offers().Upsert(ctx, t.Offer); derr != nil {
			return derr
		}
		if derr = tx.Applications().Update(ctx, t.Application); derr != nil {
			return derr
		}
		eventID, derr := record(ctx, tx, t.Event, now)
		if derr != nil {
			return derr
		}
		result = OfferResult{Offer: t.Offer, Application: t.Application, EventID: eventID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify()
	return &result, nil
}
