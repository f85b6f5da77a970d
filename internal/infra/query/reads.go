package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const getOpportunity = `
SELECT id, organization_id, title, total_rounds, accepting_applications, eligible_departments, min_qualifying_score
FROM opportunities WHERE id = $1`

func (q *Queries) GetOpportunity(ctx context.Context, db DBTX, id uuid.UUID) (Opportunity, error) {
	rows, err := db.Query(ctx, getOpportunity, id)
	if err != nil {
		return Opportunity{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Opportunity])
}

const getCandidateProfile = `
SELECT candidate_id, display_name, department, qualifying_score
FROM candidate_profiles WHERE candidate_id = $1`

func (q *Queries) GetCandidateProfile(ctx context.Context, db DBTX, candidateID uuid.UUID) (CandidateProfile, error) {
	rows, err := db.Query(ctx, getCandidateProfile, candidateID)
	if err != nil {
		return CandidateProfile{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[CandidateProfile])
}
