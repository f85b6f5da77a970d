//go:build unit || e2e

package builder

import (
	"testing"

	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type OpportunityBuilder struct {
	opp opportunity.Opportunity
}

func NewOpportunityBuilder() *OpportunityBuilder {
	return &OpportunityBuilder{opp: opportunity.Opportunity{
		ID:                    uuid.New(),
		OrganizationID:        uuid.New(),
		Title:                 "Backend Engineer",
		TotalRounds:           3,
		AcceptingApplications: true,
		EligibleDepartments:   []string{"CSE", "ECE"},
		MinQualifyingScore:    7.0,
	}}
}

func (b *OpportunityBuilder) With(mutate func(*opportunity.Opportunity)) *OpportunityBuilder {
	mutate(&b.opp)
	return b
}

func (b *OpportunityBuilder) WithRounds(n int) *OpportunityBuilder {
	b.opp.TotalRounds = n
	return b
}

func (b *OpportunityBuilder) WithOrganization(id uuid.UUID) *OpportunityBuilder {
	b.opp.OrganizationID = id
	return b
}

func (b *OpportunityBuilder) Closed() *OpportunityBuilder {
	b.opp.AcceptingApplications = false
	return b
}

func (b *OpportunityBuilder) Build() opportunity.Opportunity {
	return b.opp
}

type CandidateBuilder struct {
	profile opportunity.CandidateProfile
}

func NewCandidateBuilder() *CandidateBuilder {
	return &CandidateBuilder{profile: opportunity.CandidateProfile{
		CandidateID:     uuid.New(),
		DisplayName:     "Asha Rao",
		Department:      "CSE",
		QualifyingScore: 8.2,
	}}
}

func (b *CandidateBuilder) With(mutate func(*opportunity.CandidateProfile)) *CandidateBuilder {
	mutate(&b.profile)
	return b
}

func (b *CandidateBuilder) WithName(name string) *CandidateBuilder {
	b.profile.DisplayName = name
	return b
}

func (b *CandidateBuilder) WithScore(score float64) *CandidateBuilder {
	b.profile.QualifyingScore = score
	return b
}

func (b *CandidateBuilder) Build() opportunity.CandidateProfile {
	return b.profile
}

func Student(t *testing.T, candidateID uuid.UUID) user.Identity {
	t.Helper()
	id, err := user.NewIdentity(candidateID, user.RoleStudent, uuid.Nil)
	require.NoError(t, err)
	return id
}

// Recruiter is a fresh company user acting for organizationID.
func Recruiter(t *testing.T, organizationID uuid.UUID) user.Identity {
	t.Helper()
	id, err := user.NewIdentity(uuid.New(), user.RoleCompany, organizationID)
	require.NoError(t, err)
	return id
}

func Admin(t *testing.T, organizationID uuid.UUID) user.Identity {
	t.Helper()
	id, err := user.NewIdentity(uuid.New(), user.RoleAdmin, organizationID)
	require.NoError(t, err)
	return id
}
