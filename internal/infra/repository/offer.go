package repository

import (
	"context"

	"campus-placement/internal/domain/offer"
	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository/converter"
	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OfferQueries interface {
	UpsertOffer(ctx context.Context, db query.DBTX, arg query.Offer) error
	GetOffer(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Offer, error)
	GetOfferForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Offer, error)
	GetOfferByApplication(ctx context.Context, db query.DBTX, applicationID uuid.UUID) (query.Offer, error)
}

type OfferRepository struct {
	queries OfferQueries
	db      query.DBTX
}

func NewOfferRepository(queries OfferQueries, db query.DBTX) *OfferRepository {
	return &OfferRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OfferRepository) Upsert(ctx context.Context, o offer.Offer) error {
	if err := r.queries.UpsertOffer(ctx, r.db, converter.OfferToRow(o)); err != nil {
		return infra.WrapRepoErr("failed to upsert offer", err)
	}
	return nil
}

func (r *OfferRepository) Get(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	row, err := r.queries.GetOffer(ctx, r.db, id)
	if err != nil {
		return offer.Offer{}, infra.WrapRepoErr("failed to get offer", err)
	}
	return converter.OfferFromRow(row), nil
}

func (r *OfferRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	row, err := r.queries.GetOfferForUpdate(ctx, r.db, id)
	if err != nil {
		return offer.Offer{}, infra.WrapRepoErr("failed to lock offer", err)
	}
	return converter.OfferFromRow(row), nil
}

func (r *OfferRepository) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*offer.Offer, error) {
	row, err := r.queries.GetOfferByApplication(ctx, r.db, applicationID)
	if err != nil {
		if errs.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get offer by application", err)
	}
	o := converter.OfferFromRow(row)
	return &o, nil
}
