package repository

import (
	"context"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type RoundQueries interface {
	UpsertRound(ctx context.Context, db query.DBTX, arg query.ApplicationRound) error
	ListRounds(ctx context.Context, db query.DBTX, applicationID uuid.UUID) ([]query.ApplicationRound, error)
}

type RoundRepository struct {
	queries RoundQueries
	db      query.DBTX
}

func NewRoundRepository(queries RoundQueries, db query.DBTX) *RoundRepository {
	return &RoundRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RoundRepository) Upsert(ctx context.Context, rec application.RoundRecord) error {
	if err := r.queries.UpsertRound(ctx, r.db, converter.RoundToRow(rec)); err != nil {
		return infra.WrapRepoErr("failed to upsert round", err)
	}
	return nil
}

func (r *RoundRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]application.RoundRecord, error) {
	rows, err := r.queries.ListRounds(ctx, r.db, applicationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rounds", err)
	}
	out := make([]application.RoundRecord, len(rows))
	for i, row := range rows {
		out[i] = converter.RoundFromRow(row)
	}
	return out, nil
}
