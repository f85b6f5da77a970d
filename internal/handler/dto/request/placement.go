package request

import (
	"strings"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/pkg/patch"
	"campus-placement/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrInvalidStartDate = errs.Define(errs.ErrValidation, "proposed_start_date must be formatted as YYYY-MM-DD")

type RecordRoundRequest struct {
	Outcome   string  `json:"outcome" binding:"required"`
	RoundName *string `json:"round_name" binding:"omitempty,max=100"`
	Feedback  *string `json:"feedback" binding:"omitempty,max=2000"`
}

func (r *RecordRoundRequest) ToCommand(applicationID uuid.UUID, roundNumber int) commands.RecordRoundRequest {
	return commands.RecordRoundRequest{
		ApplicationID: applicationID,
		RoundNumber:   roundNumber,
		RoundName:     patch.Text(r.RoundName),
		Outcome:       application.RoundStatus(strings.ToUpper(strings.TrimSpace(r.Outcome))),
		Feedback:      patch.Text(r.Feedback),
	}
}

type CreateOfferRequest struct {
	Compensation      float64 `json:"compensation"`
	ProposedStartDate string  `json:"proposed_start_date" binding:"required"`
}

func (r *CreateOfferRequest) ToCommand(applicationID uuid.UUID) (commands.CreateOfferRequest, error) {
	start, err := time.Parse(offer.StartDateLayout, strings.TrimSpace(r.ProposedStartDate))
	if err != nil {
		return commands.CreateOfferRequest{}, ErrInvalidStartDate
	}
	return commands.CreateOfferRequest{
		ApplicationID:     applicationID,
		Compensation:      r.Compensation,
		ProposedStartDate: start,
	}, nil
}

type RespondToOfferRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func (r *RespondToOfferRequest) ToDomain() (offer.Decision, error) {
	return offer.NewDecision(r.Decision)
}

type ListNotificationsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}
