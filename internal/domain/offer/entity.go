package offer

import (
	"time"

	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

const StartDateLayout = "2006-01-02"

var (
	ErrNotFound = errs.Define(errs.ErrNotFound, "offer not found")

	ErrInvalidCompensation = errs.Define(errs.ErrValidation, "compensation must be positive")
	ErrMissingStartDate    = errs.Define(errs.ErrValidation, "proposed start date is required")
)

type Terms struct {
	Compensation      float64
	ProposedStartDate time.Time
}

func NewTerms(compensation float64, startDate time.Time) (Terms, error) {
	if compensation <= 0 {
		return Terms{}, ErrInvalidCompensation
	}
	if startDate.IsZero() {
		return Terms{}, ErrMissingStartDate
	}
	return Terms{Compensation: compensation, ProposedStartDate: startDate}, nil
}

// Offer is unique per application.
type Offer struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Terms         Terms
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	RespondedAt   *time.Time
}
