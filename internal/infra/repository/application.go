package repository

import (
	"context"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository/converter"

	"github.com/google/uuid"
)

//go:generate mockgen -source=application.go -destination=../../mocks/repository/mock_application.go -package=repositorymock

type ApplicationQueries interface {
	CreateApplication(ctx context.Context, db query.DBTX, arg query.Application) error
	GetApplication(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Application, error)
	GetApplicationForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Application, error)
	UpdateApplication(ctx context.Context, db query.DBTX, arg query.Application) (int64, error)
	ListApplicationsByCandidate(ctx context.Context, db query.DBTX, candidateID uuid.UUID) ([]query.Application, error)
}

type ApplicationRepository struct {
	queries ApplicationQueries
	db      query.DBTX
}

func NewApplicationRepository(queries ApplicationQueries, db query.DBTX) *ApplicationRepository {
	return &ApplicationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) error {
	if err := r.queries.CreateApplication(ctx, r.db, converter.ApplicationToRow(app)); err != nil {
		return infra.WrapRepoErr("failed to create application", err)
	}
	return nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row, err := r.queries.GetApplication(ctx, r.db, id)
	if err != nil {
		return application.Application{}, infra.WrapRepoErr("failed to get application", err)
	}
	return converter.ApplicationFromRow(row), nil
}

func (r *ApplicationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row, err := r.queries.GetApplicationForUpdate(ctx, r.db, id)
	if err != nil {
		return application.Application{}, infra.WrapRepoErr("failed to lock application", err)
	}
	return converter.ApplicationFromRow(row), nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app application.Application) error {
	n, err := r.queries.UpdateApplication(ctx, r.db, converter.ApplicationToRow(app))
	if err != nil {
		return infra.WrapRepoErr("failed to update application", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("application to update not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	rows, err := r.queries.ListApplicationsByCandidate(ctx, r.db, candidateID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list applications", err)
	}
	out := make([]application.Application, len(rows))
	for i, row := range rows {
		out[i] = converter.ApplicationFromRow(row)
	}
	return out, nil
}
