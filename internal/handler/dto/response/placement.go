package response

import (
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ApplicationResponse struct {
	ID                 uuid.UUID `json:"id"`
	CandidateID        uuid.UUID `json:"candidate_id"`
	OpportunityID      uuid.UUID `json:"opportunity_id"`
	CurrentRoundNumber int       `json:"current_round_number"`
	OverallStatus      string    `json:"overall_status"`
	AppliedAt          time.Time `json:"applied_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type RoundResponse struct {
	RoundNumber int       `json:"round_number"`
	RoundName   string    `json:"round_name"`
	Status      string    `json:"status"`
	Feedback    string    `json:"feedback,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OfferResponse struct {
	ID                uuid.UUID  `json:"id"`
	ApplicationID     uuid.UUID  `json:"application_id"`
	Compensation      float64    `json:"compensation"`
	ProposedStartDate string     `json:"proposed_start_date"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`
}

type OpportunitySummary struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Title          string    `json:"title"`
	TotalRounds    int       `json:"total_rounds"`
}

type ApplicationDetailResponse struct {
	Application ApplicationResponse `json:"application"`
	Opportunity OpportunitySummary  `json:"opportunity"`
	Rounds      []RoundResponse     `json:"rounds"`
	Offer       *OfferResponse      `json:"offer"`
}

type RoundOutcomeResponse struct {
	Application ApplicationResponse `json:"application"`
	Round       RoundResponse       `json:"round"`
	EventID     uuid.UUID           `json:"event_id"`
}

type OfferResultResponse struct {
	Offer       OfferResponse       `json:"offer"`
	Application ApplicationResponse `json:"application"`
	EventID     uuid.UUID           `json:"event_id"`
}

type NotificationResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Title                string     `json:"title"`
	Message              string     `json:"message"`
	Category             string     `json:"category"`
	RelatedOpportunityID *uuid.UUID `json:"related_opportunity_id,omitempty"`
	IsRead               bool       `json:"is_read"`
	CreatedAt            time.Time  `json:"created_at"`
	ReadAt               *time.Time `json:"read_at,omitempty"`
}

type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

func FromApplication(a application.Application) ApplicationResponse {
	var res ApplicationResponse
	_ = copier.Copy(&res, &a)
	res.OverallStatus = a.OverallStatus.String()
	return res
}

func FromApplications(list []application.Application) []ApplicationResponse {
	res := make([]ApplicationResponse, len(list))
	for i, a := range list {
		res[i] = FromApplication(a)
	}
	return res
}

func FromRound(r application.RoundRecord) RoundResponse {
	var res RoundResponse
	_ = copier.Copy(&res, &r)
	res.Status = string(r.Status)
	return res
}

func FromOffer(o offer.Offer) OfferResponse {
	return OfferResponse{
		ID:                o.ID,
		ApplicationID:     o.ApplicationID,
		Compensation:      o.Terms.Compensation,
		ProposedStartDate: o.Terms.ProposedStartDate.Format(offer.StartDateLayout),
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		RespondedAt:       o.RespondedAt,
	}
}

func FromApplicationView(v *queries.ApplicationView) *ApplicationDetailResponse {
	res := &ApplicationDetailResponse{
		Application: FromApplication(v.Application),
		Rounds:      make([]RoundResponse, len(v.Rounds)),
	}
	_ = copier.Copy(&res.Opportunity, &v.Opportunity)
	for i, r := range v.Rounds {
		res.Rounds[i] = FromRound(r)
	}
	if v.Offer != nil {
		o := FromOffer(*v.Offer)
		res.Offer = &o
	}
	return res
}

func FromNotifications(list []notification.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(list))
	_ = copier.Copy(&res, &list)
	return res
}
