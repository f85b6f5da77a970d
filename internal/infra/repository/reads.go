package repository

import (
	"context"

	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type ReferenceQueries interface {
	GetOpportunity(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Opportunity, error)
	GetCandidateProfile(ctx context.Context, db query.DBTX, candidateID uuid.UUID) (query.CandidateProfile, error)
}

// ReferenceReads serves opportunity and profile data owned by other services.
type ReferenceReads struct {
	queries ReferenceQueries
	db      query.DBTX
}

func NewReferenceReads(queries ReferenceQueries, db query.DBTX) *ReferenceReads {
	return &ReferenceReads{
		queries: queries,
		db:      db,
	}
}

func (r *ReferenceReads) OpportunityByID(ctx context.Context, id uuid.UUID) (opportunity.Opportunity, error) {
	row, err := r.queries.GetOpportunity(ctx, r.db, id)
	if err != nil {
		return opportunity.Opportunity{}, infra.WrapRepoErr("failed to get opportunity", err)
	}
	return converter.OpportunityFromRow(row), nil
}

func (r *ReferenceReads) CandidateByID(ctx context.Context, id uuid.UUID) (opportunity.CandidateProfile, error) {
	row, err := r.queries.GetCandidateProfile(ctx, r.db, id)
	if err != nil {
		return opportunity.CandidateProfile{}, infra.WrapRepoErr("failed to get candidate profile", err)
	}
	return converter.CandidateFromRow(row), nil
}
