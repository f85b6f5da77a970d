package commands

import (
	"context"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/infra"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/pkg/telemetry"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrOnlyCandidatesApply = errs.Define(errs.ErrForbidden, "only candidates can apply")
	ErrOpportunityNotFound = errs.Define(errs.ErrNotFound, "opportunity not found")
	ErrCandidateNotFound   = errs.Define(errs.ErrNotFound, "candidate profile not found")
)

type ApplyResult struct {
	Application application.Application
	EventID     uuid.UUID
}

type RecordRoundRequest struct {
	ApplicationID uuid.UUID
	RoundNumber   int
	RoundName     string
	Outcome       application.RoundStatus
	Feedback      string
}

type RoundResult struct {
	Application application.Application
	Round       application.RoundRecord
	EventID     uuid.UUID
}

//go:generate mockgen -destination=../../mocks/commands/mock_commands.go -package=commandsmock . ApplicationCommands,OfferCommands

type ApplicationCommands interface {
	Apply(ctx context.Context, opportunityID uuid.UUID, candidate user.Identity) (*ApplyResult, error)
	RecordRoundOutcome(ctx context.Context, req RecordRoundRequest, actor user.Identity) (*RoundResult, error)
}

type applicationUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	notifier shared.CommitNotifier
}

func NewApplicationUseCase(uow shared.UnitOfWork, clk clock.Clock, notifier shared.CommitNotifier) ApplicationCommands {
	return &applicationUseCaseImpl{uow: uow, clock: clk, notifier: notifier}
}

func (uc *applicationUseCaseImpl) Apply(ctx context.Context, opportunityID uuid.UUID, candidate user.Identity) (_ *ApplyResult, err error) {
	ctx, span := telemetry.Start(ctx, "commands.Apply", attribute.String("opportunity_id", opportunityID.String()))
	defer func() { telemetry.End(span, err) }()

	if !candidate.IsCandidate() {
		return nil, ErrOnlyCandidatesApply
	}

	var result ApplyResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		opp, derr := tx.Reads().OpportunityByID(ctx, opportunityID)
		if derr != nil {
			return notFoundAs(derr, ErrOpportunityNotFound)
		}
		profile, derr := tx.Reads().CandidateByID(ctx, candidate.UserID)
		if derr != nil {
			return notFoundAs(derr, ErrCandidateNotFound)
		}

		now := uc.clock.Now()
		t, derr := application.Apply(opp, profile, uuid.New(), now)
		if derr != nil {
			return derr
		}
		if derr = tx.Applications().Create(ctx, t.Application); derr != nil {
			return derr
		}
		eventID, derr := record(ctx, tx, t.Event, now)
		if derr != nil {
			return derr
		}
		result = ApplyResult{Application: t.Application, EventID: eventID}
		return nil
	})
	if err != nil {
		// The unique (candidate, opportunity) constraint decides races; it may
		// surface on insert or, for the memory store, at commit.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrAlreadyApplied
		}
		return nil, err
	}

	uc.notifier.Notify()
	return &result, nil
}

func (uc *applicationUseCaseImpl) RecordRoundOutcome(ctx context.Context, req RecordRoundRequest, actor user.Identity) (_ *RoundResult, err error) {
	ctx, span := telemetry.Start(ctx, "commands.RecordRoundOutcome",
		attribute.String("application_id", req.ApplicationID.String()),
		attribute.Int("round_number", req.RoundNumber))
	defer func() { telemetry.End(span, err) }()

	var result RoundResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := lockSnapshot(ctx, tx, req.ApplicationID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		t, derr := application.RecordRoundOutcome(snap, application.RoundOutcome{
			RoundNumber: req.RoundNumber,
			RoundName:   req.RoundName,
			Outcome:     req.Outcome,
			Feedback:    req.Feedback,
			Actor:       actor,
		}, now)
		if derr != nil {
			return derr
		}

		if derr = tx.Rounds().Upsert(ctx, *t.Round); derr != nil {
			return derr
		}
		if derr = tx.Applications().Update(ctx, t.Application); derr != nil {
			return derr
		}
		eventID, derr := record(ctx, tx, t.Event, now)
		if derr != nil {
			return derr
		}
		result = RoundResult{Application: t.Application, Round: *t.Round, EventID: eventID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify()
	return &result, nil
}
