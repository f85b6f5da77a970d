package event

import (
	"strings"

	"campus-placement/internal/domain/user"

	"github.com/google/uuid"
)

// Recipient is either a single user (candidate) or an organization inbox.
type Recipient struct {
	ID   uuid.UUID
	Role user.Role
}

func (r Recipient) Topic() string {
	if r.Role.RepresentsOrganization() {
		return user.OrganizationTopic(r.ID)
	}
	return user.UserTopic(r.ID)
}

func candidateOf(e Envelope) Recipient {
	return Recipient{ID: e.CandidateID, Role: user.RoleStudent}
}

func organizationOf(e Envelope) Recipient {
	return Recipient{ID: e.OrganizationID, Role: user.RoleCompany}
}

// Resolve maps each event type to its durable recipients. New types must be added here;
// TestResolveCoversAllTypes fails otherwise.
func Resolve(e Envelope) ([]Recipient, error) {
	switch e.Type {
	case TypeApplicationSubmitted:
		return []Recipient{organizationOf(e), candidateOf(e)}, nil
	case TypeRoundOutcome:
		return []Recipient{candidateOf(e)}, nil
	case TypeOfferCreated:
		return []Recipient{candidateOf(e)}, nil
	case TypeOfferResolved:
		return []Recipient{organizationOf(e)}, nil
	default:
		return nil, ErrUnknownType
	}
}

const applicationRoomPrefix = "application:"

// ApplicationRoom is the live-only dashboard room for one application.
func ApplicationRoom(applicationID uuid.UUID) string {
	return applicationRoomPrefix + applicationID.String()
}

// ParseApplicationRoom is the inverse of ApplicationRoom.
func ParseApplicationRoom(topic string) (uuid.UUID, bool) {
	raw, ok := strings.CutPrefix(topic, applicationRoomPrefix)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
