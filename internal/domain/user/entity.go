package user

import (
	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole         = errs.Define(errs.ErrValidation, "invalid role")
	ErrMissingUserID       = errs.Define(errs.ErrValidation, "user id is required")
	ErrMissingOrganization = errs.Define(errs.ErrValidation, "organization id is required for company and admin identities")
)

// Identity is a caller that has already been authenticated by the outer layer.
type Identity struct {
	UserID         uuid.UUID
	Role           Role
	OrganizationID uuid.UUID
}

func NewIdentity(userID uuid.UUID, role Role, organizationID uuid.UUID) (Identity, error) {
	if userID == uuid.Nil {
		return Identity{}, ErrMissingUserID
	}
	if !role.IsValid() {
		return Identity{}, ErrInvalidRole
	}
	if role.RepresentsOrganization() && organizationID == uuid.Nil {
		return Identity{}, ErrMissingOrganization
	}
	if !role.RepresentsOrganization() {
		organizationID = uuid.Nil
	}
	return Identity{UserID: userID, Role: role, OrganizationID: organizationID}, nil
}

func (i Identity) ActsFor(organizationID uuid.UUID) bool {
	return i.Role.RepresentsOrganization() && organizationID != uuid.Nil && i.OrganizationID == organizationID
}

func (i Identity) IsCandidate() bool {
	return i.Role == RoleStudent
}

// InboxID is the recipient id durable notifications are stored under:
// the organization for company and admin identities, the user otherwise.
func (i Identity) InboxID() uuid.UUID {
	if i.Role.RepresentsOrganization() {
		return i.OrganizationID
	}
	return i.UserID
}

func UserTopic(id uuid.UUID) string {
	return "user:" + id.String()
}

func OrganizationTopic(id uuid.UUID) string {
	return "org:" + id.String()
}

func RoleTopic(r Role) string {
	return "role:" + r.String()
}

// Topics are the addresses a verified connection is subscribed to on admission.
func (i Identity) Topics() []string {
	topics := []string{UserTopic(i.UserID), RoleTopic(i.Role)}
	if i.Role.RepresentsOrganization() {
		topics = append(topics, OrganizationTopic(i.OrganizationID))
	}
	return topics
}
