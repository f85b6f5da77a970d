package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const offerColumns = `id, application_id, compensation, proposed_start_date, status, created_at, updated_at, responded_at`

// The conflict target keeps the first offer id; later writes only replace terms and status.
const upsertOffer = `
INSERT INTO offers (` + offerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (application_id) DO UPDATE
SET compensation        = EXCLUDED.compensation,
    proposed_start_date = EXCLUDED.proposed_start_date,
    status              = EXCLUDED.status,
    updated_at          = EXCLUDED.updated_at,
    responded_at        = EXCLUDED.responded_at`

func (q *Queries) UpsertOffer(ctx context.Context, db DBTX, arg Offer) error {
	_, err := db.Exec(ctx, upsertOffer,
		arg.ID, arg.ApplicationID, arg.Compensation, arg.ProposedStartDate,
		arg.Status, arg.CreatedAt, arg.UpdatedAt, arg.RespondedAt)
	return err
}

const getOffer = `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

func (q *Queries) GetOffer(ctx context.Context, db DBTX, id uuid.UUID) (Offer, error) {
	rows, err := db.Query(ctx, getOffer, id)
	if err != nil {
		return Offer{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Offer])
}

const getOfferForUpdate = getOffer + ` FOR UPDATE`

func (q *Queries) GetOfferForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Offer, error) {
	rows, err := db.Query(ctx, getOfferForUpdate, id)
	if err != nil {
		return Offer{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Offer])
}

const getOfferByApplication = `SELECT ` + offerColumns + ` FROM offers WHERE application_id = $1`

func (q *Queries) GetOfferByApplication(ctx context.Context, db DBTX, applicationID uuid.UUID) (Offer, error) {
	rows, err := db.Query(ctx, getOfferByApplication, applicationID)
	if err != nil {
		return Offer{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Offer])
}
