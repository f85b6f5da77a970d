package application

import (
	"fmt"
	"strings"
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

// Snapshot is the state a transition is decided against. Callers load it inside
// the transaction that will persist the result.
type Snapshot struct {
	Application Application
	Rounds      []RoundRecord
	Opportunity opportunity.Opportunity
	Candidate   opportunity.CandidateProfile
	HasOffer    bool
}

type Transition struct {
	Application Application
	Round       *RoundRecord
	Event       event.Description
}

// Apply decides a new application. Duplicate (candidate, opportunity) pairs are
// rejected by the store's unique constraint, not here.
func Apply(opp opportunity.Opportunity, candidate opportunity.CandidateProfile, id uuid.UUID, now time.Time) (Transition, error) {
	if err := opp.CheckEligibility(candidate); err != nil {
		return Transition{}, err
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	app := Application{
		ID:                 id,
		CandidateID:        candidate.CandidateID,
		OpportunityID:      opp.ID,
		CurrentRoundNumber: 0,
		OverallStatus:      StatusApplied,
		AppliedAt:          now,
		UpdatedAt:          now,
	}

	desc, err := event.Describe(Envelope(event.TypeApplicationSubmitted, app, opp, candidate, event.Display{}))
	if err != nil {
		return Transition{}, err
	}
	return Transition{Application: app, Event: desc}, nil
}

type RoundOutcome struct {
	RoundNumber int
	RoundName   string
	Outcome     RoundStatus
	Feedback    string
	Actor       user.Identity
}

// RecordRoundOutcome decides the result of one round.
//
// Forward rounds must be exactly CurrentRoundNumber+1. Rounds at or below the
// current one are corrections and replace the earlier record; the overall status
// is then re-derived from every round, and CurrentRoundNumber never moves back.
// A REJECTED application is terminal, so it takes no corrections either.
func RecordRoundOutcome(s Snapshot, in RoundOutcome, now time.Time) (Transition, error) {
	app, opp := s.Application, s.Opportunity

	if !in.Actor.ActsFor(opp.OrganizationID) || app.OpportunityID != opp.ID {
		return Transition{}, ErrNotFound
	}
	if !in.Outcome.IsOutcome() {
		return Transition{}, ErrInvalidOutcome
	}
	if len(in.Feedback) > MaxFeedbackLength {
		return Transition{}, ErrFeedbackTooLong
	}
	name := strings.TrimSpace(in.RoundName)
	if len(name) > MaxRoundNameLength {
		return Transition{}, ErrRoundNameTooLong
	}
	if name == "" {
		name = DefaultRoundName(in.RoundNumber)
	}

	if !opp.HasRound(in.RoundNumber) {
		return Transition{}, errs.Reason(errs.ErrInvalidRound,
			fmt.Sprintf("round %d is outside 1..%d", in.RoundNumber, opp.TotalRounds))
	}
	if in.RoundNumber > app.CurrentRoundNumber+1 {
		return Transition{}, errs.Reason(errs.ErrInvalidRound,
			fmt.Sprintf("round %d cannot be recorded before round %d", in.RoundNumber, app.CurrentRoundNumber+1))
	}
	if app.OverallStatus.IsTerminal() {
		return Transition{}, errs.Reason(errs.ErrInvalidState,
			fmt.Sprintf("application is %s", app.OverallStatus))
	}
	if s.HasOffer {
		return Transition{}, errs.Reason(errs.ErrInvalidState, "an offer has already been issued for this application")
	}

	round := RoundRecord{
		ApplicationID: app.ID,
		RoundNumber:   in.RoundNumber,
		RoundName:     name,
		Status:        in.Outcome,
		Feedback:      in.Feedback,
		UpdatedBy:     in.Actor.UserID,
		UpdatedAt:     now,
	}

	next := app
	next.OverallStatus = DeriveStatus(UpsertRound(s.Rounds, round), opp.TotalRounds)
	next.CurrentRoundNumber = max(app.CurrentRoundNumber, in.RoundNumber)
	next.UpdatedAt = now

	desc, err := event.Describe(Envelope(event.TypeRoundOutcome, next, opp, s.Candidate, event.Display{
		RoundNumber: round.RoundNumber,
		RoundName:   round.RoundName,
		Outcome:     string(round.Status),
		Feedback:    round.Feedback,
	}))
	if err != nil {
		return Transition{}, err
	}
	return Transition{Application: next, Round: &round, Event: desc}, nil
}

// Envelope builds the outbox payload for app; extra carries the event-specific display fields.
func Envelope(t event.Type, app Application, opp opportunity.Opportunity, candidate opportunity.CandidateProfile, extra event.Display) event.Envelope {
	d := extra
	d.OpportunityTitle = opp.Title
	d.CandidateName = candidate.DisplayName
	d.OverallStatus = string(app.OverallStatus)
	return event.Envelope{
		Version:        event.PayloadVersion,
		Type:           t,
		ApplicationID:  app.ID,
		OpportunityID:  opp.ID,
		CandidateID:    app.CandidateID,
		OrganizationID: opp.OrganizationID,
		Display:        d,
	}
}
