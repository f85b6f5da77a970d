package event

import (
	"fmt"
	"strings"

	"campus-placement/internal/domain/user"
)

const (
	CategoryApplication = "APPLICATION"
	CategoryRound       = "ROUND"
	CategoryOffer       = "OFFER"
)

type Content struct {
	Title    string
	Message  string
	Category string
}

// Render builds the notification text for one recipient from the envelope alone.
func Render(e Envelope, r Recipient) (Content, error) {
	d := e.Display
	switch e.Type {
	case TypeApplicationSubmitted:
		if r.Role == user.RoleStudent {
			return Content{
				Title:    "Application received",
				Message:  fmt.Sprintf("Your application for %s has been submitted.", d.OpportunityTitle),
				Category: CategoryApplication,
			}, nil
		}
		return Content{
			Title:    "New application",
			Message:  fmt.Sprintf("%s applied for %s.", nameOr(d.CandidateName, "A candidate"), d.OpportunityTitle),
			Category: CategoryApplication,
		}, nil
	case TypeRoundOutcome:
		msg := fmt.Sprintf("%s for %s: %s.", d.RoundName, d.OpportunityTitle, strings.ToLower(d.Outcome))
		if d.Feedback != "" {
			msg += " Feedback: " + d.Feedback
		}
		return Content{
			Title:    "Round result: " + d.RoundName,
			Message:  msg,
			Category: CategoryRound,
		}, nil
	case TypeOfferCreated:
		msg := fmt.Sprintf("You have received an offer for %s.", d.OpportunityTitle)
		if d.StartDate != "" {
			msg = fmt.Sprintf("You have received an offer for %s starting %s.", d.OpportunityTitle, d.StartDate)
		}
		return Content{
			Title:    "Offer received",
			Message:  msg,
			Category: CategoryOffer,
		}, nil
	case TypeOfferResolved:
		return Content{
			Title:    "Offer " + strings.ToLower(d.Decision),
			Message:  fmt.Sprintf("%s has %s the offer for %s.", nameOr(d.CandidateName, "The candidate"), pastTense(d.Decision), d.OpportunityTitle),
			Category: CategoryOffer,
		}, nil
	default:
		return Content{}, ErrUnknownType
	}
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

func pastTense(decision string) string {
	switch strings.ToUpper(decision) {
	case "ACCEPT", "ACCEPTED":
		return "accepted"
	case "DECLINE", "DECLINED":
		return "declined"
	default:
		return "responded to"
	}
}

// RenderSummary is the third-person text pushed to shared rooms, where the
// viewer may be either party.
func RenderSummary(e Envelope) (Content, error) {
	d := e.Display
	candidate := nameOr(d.CandidateName, "The candidate")
	switch e.Type {
	case TypeApplicationSubmitted:
		return Content{
			Title:    "Application submitted",
			Message:  fmt.Sprintf("%s applied for %s.", candidate, d.OpportunityTitle),
			Category: CategoryApplication,
		}, nil
	case TypeRoundOutcome:
		return Content{
			Title:    "Round result: " + d.RoundName,
			Message:  fmt.Sprintf("%s for %s: %s.", d.RoundName, d.OpportunityTitle, strings.ToLower(d.Outcome)),
			Category: CategoryRound,
		}, nil
	case TypeOfferCreated:
		return Content{
			Title:    "Offer issued",
			Message:  fmt.Sprintf("An offer for %s was issued to %s.", d.OpportunityTitle, candidate),
			Category: CategoryOffer,
		}, nil
	case TypeOfferResolved:
		return Content{
			Title:    "Offer " + strings.ToLower(d.Decision),
			Message:  fmt.Sprintf("%s has %s the offer for %s.", candidate, pastTense(d.Decision), d.OpportunityTitle),
			Category: CategoryOffer,
		}, nil
	default:
		return Content{}, ErrUnknownType
	}
}
