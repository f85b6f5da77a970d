package converter

import (
	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/pkg/pgconv"
	"campus-placement/internal/usecase/shared"
)

func ApplicationToRow(a application.Application) query.Application {
	return query.Application{
		ID:                 a.ID,
		CandidateID:        a.CandidateID,
		OpportunityID:      a.OpportunityID,
		CurrentRoundNumber: pgconv.IntToInt32(a.CurrentRoundNumber),
		OverallStatus:      string(a.OverallStatus),
		AppliedAt:          a.AppliedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func ApplicationFromRow(r query.Application) application.Application {
	return application.Application{
		ID:                 r.ID,
		CandidateID:        r.CandidateID,
		OpportunityID:      r.OpportunityID,
		CurrentRoundNumber: int(r.CurrentRoundNumber),
		OverallStatus:      application.Status(r.OverallStatus),
		AppliedAt:          r.AppliedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
}

func RoundToRow(r application.RoundRecord) query.ApplicationRound {
	return query.ApplicationRound{
		ApplicationID: r.ApplicationID,
		RoundNumber:   pgconv.IntToInt32(r.RoundNumber),
		RoundName:     r.RoundName,
		Status:        string(r.Status),
		Feedback:      pgconv.OptionalText(r.Feedback),
		UpdatedBy:     r.UpdatedBy,
		UpdatedAt:     r.UpdatedAt,
	}
}

func RoundFromRow(r query.ApplicationRound) application.RoundRecord {
	return application.RoundRecord{
		ApplicationID: r.ApplicationID,
		RoundNumber:   int(r.RoundNumber),
		RoundName:     r.RoundName,
		Status:        application.RoundStatus(r.Status),
		Feedback:      pgconv.StringFromPgtype(r.Feedback),
		UpdatedBy:     r.UpdatedBy,
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func OfferToRow(o offer.Offer) query.Offer {
	return query.Offer{
		ID:                o.ID,
		ApplicationID:     o.ApplicationID,
		Compensation:      o.Terms.Compensation,
		ProposedStartDate: pgconv.DateToPgtype(o.Terms.ProposedStartDate),
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		RespondedAt:       pgconv.TimePtrToPgtype(o.RespondedAt),
	}
}

func OfferFromRow(r query.Offer) offer.Offer {
	return offer.Offer{
		ID:            r.ID,
		ApplicationID: r.ApplicationID,
		Terms: offer.Terms{
			Compensation:      r.Compensation,
			ProposedStartDate: pgconv.TimeFromPgDate(r.ProposedStartDate),
		},
		Status:      offer.Status(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
		RespondedAt: pgconv.TimePtrFromPgtype(r.RespondedAt),
	}
}

func OutboxToRow(e shared.OutboxEntry) query.OutboxEntry {
	return query.OutboxEntry{
		ID:          e.ID,
		AggregateID: e.AggregateID,
		EventType:   string(e.EventType),
		Payload:     e.Payload,
		CommittedAt: e.CommittedAt,
	}
}

func OutboxFromRow(r query.OutboxEntry) shared.OutboxEntry {
	return shared.OutboxEntry{
		ID:           r.ID,
		Seq:          r.Seq,
		AggregateID:  r.AggregateID,
		EventType:    event.Type(r.EventType),
		Payload:      r.Payload,
		CommittedAt:  r.CommittedAt.UTC(),
		PublishedAt:  pgconv.TimePtrFromPgtype(r.PublishedAt),
		AttemptCount: int(r.AttemptCount),
		LastError:    pgconv.StringFromPgtype(r.LastError),
	}
}

func NotificationToRow(n notification.Notification) query.Notification {
	return query.Notification{
		ID:                   n.ID,
		OutboxID:             n.OutboxID,
		RecipientID:          n.RecipientID,
		RecipientRole:        n.RecipientRole.String(),
		Title:                n.Title,
		Message:              n.Message,
		Category:             n.Category,
		RelatedOpportunityID: pgconv.UUIDPtrToPgtype(n.RelatedOpportunityID),
		IsRead:               n.IsRead,
		CreatedAt:            n.CreatedAt,
		ReadAt:               pgconv.TimePtrToPgtype(n.ReadAt),
	}
}

func NotificationFromRow(r query.Notification) notification.Notification {
	return notification.Notification{
		ID:                   r.ID,
		OutboxID:             r.OutboxID,
		RecipientID:          r.RecipientID,
		RecipientRole:        user.Role(r.RecipientRole),
		Title:                r.Title,
		Message:              r.Message,
		Category:             r.Category,
		RelatedOpportunityID: pgconv.UUIDPtrFromPgtype(r.RelatedOpportunityID),
		IsRead:               r.IsRead,
		CreatedAt:            r.CreatedAt.UTC(),
		ReadAt:               pgconv.TimePtrFromPgtype(r.ReadAt),
	}
}

func OpportunityFromRow(r query.Opportunity) opportunity.Opportunity {
	return opportunity.Opportunity{
		ID:                    r.ID,
		OrganizationID:        r.OrganizationID,
		Title:                 r.Title,
		TotalRounds:           int(r.TotalRounds),
		AcceptingApplications: r.AcceptingApplications,
		EligibleDepartments:   r.EligibleDepartments,
		MinQualifyingScore:    r.MinQualifyingScore,
	}
}

func CandidateFromRow(r query.CandidateProfile) opportunity.CandidateProfile {
	return opportunity.CandidateProfile{
		CandidateID:     r.CandidateID,
		DisplayName:     r.DisplayName,
		Department:      r.Department,
		QualifyingScore: r.QualifyingScore,
	}
}
