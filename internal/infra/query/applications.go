package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, candidate_id, opportunity_id, current_round_number, overall_status, applied_at, updated_at`

const createApplication = `
INSERT INTO applications (` + applicationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (q *Queries) CreateApplication(ctx context.Context, db DBTX, arg Application) error {
	_, err := db.Exec(ctx, createApplication,
		arg.ID, arg.CandidateID, arg.OpportunityID, arg.CurrentRoundNumber,
		arg.OverallStatus, arg.AppliedAt, arg.UpdatedAt)
	return err
}

const getApplication = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

func (q *Queries) GetApplication(ctx context.Context, db DBTX, id uuid.UUID) (Application, error) {
	rows, err := db.Query(ctx, getApplication, id)
	if err != nil {
		return Application{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Application])
}

const getApplicationForUpdate = getApplication + ` FOR UPDATE`

func (q *Queries) GetApplicationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Application, error) {
	rows, err := db.Query(ctx, getApplicationForUpdate, id)
	if err != nil {
		return Application{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Application])
}

const updateApplication = `
UPDATE applications
SET current_round_number = $2, overall_status = $3, updated_at = $4
WHERE id = $1`

func (q *Queries) UpdateApplication(ctx context.Context, db DBTX, arg Application) (int64, error) {
	tag, err := db.Exec(ctx, updateApplication, arg.ID, arg.CurrentRoundNumber, arg.OverallStatus, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listApplicationsByCandidate = `
SELECT ` + applicationColumns + ` FROM applications
WHERE candidate_id = $1
ORDER BY applied_at DESC`

func (q *Queries) ListApplicationsByCandidate(ctx context.Context, db DBTX, candidateID uuid.UUID) ([]Application, error) {
	rows, err := db.Query(ctx, listApplicationsByCandidate, candidateID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Application])
}

const roundColumns = `application_id, round_number, round_name, status, feedback, updated_by, updated_at`

const upsertRound = `
INSERT INTO application_rounds (` + roundColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (application_id, round_number) DO UPDATE
SET round_name = EXCLUDED.round_name,
    status     = EXCLUDED.status,
    feedback   = EXCLUDED.feedback,
    updated_by = EXCLUDED.updated_by,
    updated_at = EXCLUDED.updated_at`

func (q *Queries) UpsertRound(ctx context.Context, db DBTX, arg ApplicationRound) error {
	_, err := db.Exec(ctx, upsertRound,
		arg.ApplicationID, arg.RoundNumber, arg.RoundName, arg.Status,
		arg.Feedback, arg.UpdatedBy, arg.UpdatedAt)
	return err
}

const listRounds = `
SELECT ` + roundColumns + ` FROM application_rounds
WHERE application_id = $1
ORDER BY round_number`

func (q *Queries) ListRounds(ctx context.Context, db DBTX, applicationID uuid.UUID) ([]ApplicationRound, error) {
	rows, err := db.Query(ctx, listRounds, applicationID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[ApplicationRound])
}
