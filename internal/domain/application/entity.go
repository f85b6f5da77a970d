package application

import (
	"fmt"
	"time"

	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errs.Define(errs.ErrNotFound, "application not found")

	ErrInvalidOutcome   = errs.Define(errs.ErrValidation, "round outcome must be SELECTED or REJECTED")
	ErrFeedbackTooLong  = errs.Define(errs.ErrValidation, fmt.Sprintf("feedback must be at most %d characters", MaxFeedbackLength))
	ErrRoundNameTooLong = errs.Define(errs.ErrValidation, fmt.Sprintf("round name must be at most %d characters", MaxRoundNameLength))
)

const (
	MaxFeedbackLength  = 2000
	MaxRoundNameLength = 100
)

type Application struct {
	ID                 uuid.UUID
	CandidateID        uuid.UUID
	OpportunityID      uuid.UUID
	CurrentRoundNumber int
	OverallStatus      Status
	AppliedAt          time.Time
	UpdatedAt          time.Time
}

// RoundRecord is unique per (ApplicationID, RoundNumber); writing the same round again replaces it.
type RoundRecord struct {
	ApplicationID uuid.UUID
	RoundNumber   int
	RoundName     string
	Status        RoundStatus
	Feedback      string
	UpdatedBy     uuid.UUID
	UpdatedAt     time.Time
}

func DefaultRoundName(n int) string {
	return fmt.Sprintf("Round %d", n)
}

// UpsertRound returns a copy of rounds with r inserted or replacing the record for the same round.
func UpsertRound(rounds []RoundRecord, r RoundRecord) []RoundRecord {
	out := make([]RoundRecord, 0, len(rounds)+1)
	replaced := false
	for _, existing := range rounds {
		if existing.RoundNumber == r.RoundNumber {
			out = append(out, r)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, r)
	}
	return out
}

// DeriveStatus computes the overall status from the full set of round records:
// any REJECTED round pins REJECTED, a SELECTED final round means SELECTED.
func DeriveStatus(rounds []RoundRecord, totalRounds int) Status {
	if len(rounds) == 0 {
		return StatusApplied
	}
	finalSelected := false
	for _, r := range rounds {
		if r.Status == RoundRejected {
			return StatusRejected
		}
		if r.RoundNumber == totalRounds && r.Status == RoundSelected {
			finalSelected = true
		}
	}
	if finalSelected {
		return StatusSelected
	}
	return StatusInProgress
}
