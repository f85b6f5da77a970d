package opportunity

import (
	"slices"
	"strings"

	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

// Rejection reasons surfaced verbatim to the candidate.
const (
	ReasonClosed       = "opportunity is not accepting applications"
	ReasonDepartment   = "department is not eligible for this opportunity"
	ReasonMinimumScore = "minimum qualifying score not met"
)

// Opportunity is owned by the posting service; the core only reads it.
type Opportunity struct {
	ID                    uuid.UUID
	OrganizationID        uuid.UUID
	Title                 string
	TotalRounds           int
	AcceptingApplications bool
	EligibleDepartments   []string
	MinQualifyingScore    float64
}

type CandidateProfile struct {
	CandidateID     uuid.UUID
	DisplayName     string
	Department      string
	QualifyingScore float64
}

// CheckEligibility returns a NotEligible error naming the first failed criterion.
func (o Opportunity) CheckEligibility(p CandidateProfile) error {
	if !o.AcceptingApplications {
		return errs.Reason(errs.ErrNotEligible, ReasonClosed)
	}
	if len(o.EligibleDepartments) > 0 && !slices.ContainsFunc(o.EligibleDepartments, func(d string) bool {
		return strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(p.Department))
	}) {
		return errs.Reason(errs.ErrNotEligible, ReasonDepartment)
	}
	if p.QualifyingScore < o.MinQualifyingScore {
		return errs.Reason(errs.ErrNotEligible, ReasonMinimumScore)
	}
	return nil
}

func (o Opportunity) HasRound(n int) bool {
	return n >= 1 && n <= o.TotalRounds
}
