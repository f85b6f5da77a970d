package offer

import (
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

type Transition struct {
	Offer       Offer
	Application application.Application
	Event       event.Description
}

// Create issues an offer, or replaces the terms of the existing one and resets it to PENDING.
// existing is nil when the application has no offer yet.
func Create(s application.Snapshot, existing *Offer, terms Terms, actor user.Identity, id uuid.UUID, now time.Time) (Transition, error) {
	app, opp := s.Application, s.Opportunity
	if !actor.ActsFor(opp.OrganizationID) || app.OpportunityID != opp.ID {
		return Transition{}, application.ErrNotFound
	}
	if _, err := NewTerms(terms.Compensation, terms.ProposedStartDate); err != nil {
		return Transition{}, err
	}
	if app.OverallStatus != application.StatusSelected {
		return Transition{}, errs.Reason(errs.ErrInvalidState, "offers can only be created for SELECTED applications")
	}

	var o Offer
	if existing != nil {
		if existing.Status != StatusPending {
			return Transition{}, errs.Reason(errs.ErrInvalidState, "offer has already been responded to")
		}
		o = *existing
		o.Terms = terms
		o.Status = StatusPending
		o.UpdatedAt = now
		o.RespondedAt = nil
	} else {
		if id == uuid.Nil {
			id = uuid.New()
		}
		o = Offer{
			ID:            id,
			ApplicationID: app.ID,
			Terms:         terms,
			Status:        StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	desc, err := event.Describe(application.Envelope(event.TypeOfferCreated, app, opp, s.Candidate, event.Display{
		Compensation: terms.Compensation,
		StartDate:    terms.ProposedStartDate.Format(StartDateLayout),
	}))
	if err != nil {
		return Transition{}, err
	}
	return Transition{Offer: o, Application: app, Event: desc}, nil
}

// Respond lets the owning candidate accept or decline a PENDING offer exactly once.
func Respond(s application.Snapshot, current Offer, candidate user.Identity, decision Decision, now time.Time) (Transition, error) {
	app := s.Application
	if !candidate.IsCandidate() || candidate.UserID != app.CandidateID || current.ApplicationID != app.ID {
		return Transition{}, ErrNotFound
	}
	if current.Status != StatusPending {
		return Transition{}, errs.ErrAlreadyProcessed
	}
	if app.OverallStatus != application.StatusSelected {
		return Transition{}, errs.Reason(errs.ErrInvalidState, "application is not awaiting an offer response")
	}

	next := current
	nextApp := app
	switch decision {
	case DecisionAccept:
		next.Status = StatusAccepted
		nextApp.OverallStatus = application.StatusOfferAccepted
	case DecisionDecline:
		next.Status = StatusDeclined
		nextApp.OverallStatus = application.StatusOfferDeclined
	default:
		return Transition{}, ErrInvalidDecision
	}
	respondedAt := now
	next.RespondedAt = &respondedAt
	next.UpdatedAt = now
	nextApp.UpdatedAt = now

	desc, err := event.Describe(application.Envelope(event.TypeOfferResolved, nextApp, s.Opportunity, s.Candidate, event.Display{
		Decision:     string(next.Status),
		Compensation: next.Terms.Compensation,
		StartDate:    next.Terms.ProposedStartDate.Format(StartDateLayout),
	}))
	if err != nil {
		return Transition{}, err
	}
	return Transition{Offer: next, Application: nextApp, Event: desc}, nil
}
