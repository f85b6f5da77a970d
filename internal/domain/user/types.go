package user

import "strings"

// Role is closed: every switch over it should list all three values.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	default:
		return false
	}
}

// RepresentsOrganization reports whether identities with this role act for an organization.
func (r Role) RepresentsOrganization() bool {
	switch r {
	case RoleCompany, RoleAdmin:
		return true
	case RoleStudent:
		return false
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
