package repository

import (
	"context"
	"time"

	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository/converter"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/pkg/pgconv"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=outbox.go -destination=../../mocks/repository/mock_outbox.go -package=repositorymock

type OutboxQueries interface {
	AppendOutbox(ctx context.Context, db query.DBTX, arg query.OutboxEntry) error
	GetOutbox(ctx context.Context, db query.DBTX, id uuid.UUID) (query.OutboxEntry, error)
	PendingOutboxHeads(ctx context.Context, db query.DBTX, limit int32, exclude []uuid.UUID) ([]query.OutboxEntry, error)
	ClaimOutboxHead(ctx context.Context, db query.DBTX, id uuid.UUID) (query.OutboxEntry, error)
	MarkOutboxPublished(ctx context.Context, db query.DBTX, id uuid.UUID, at time.Time) error
	RecordOutboxFailure(ctx context.Context, db query.DBTX, id uuid.UUID, lastError string) error
	CountPendingOutbox(ctx context.Context, db query.DBTX) (int64, error)
}

type OutboxRepository struct {
	queries OutboxQueries
	db      query.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db query.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, e shared.OutboxEntry) error {
	if err := r.queries.AppendOutbox(ctx, r.db, converter.OutboxToRow(e)); err != nil {
		return infra.WrapRepoErr("failed to append outbox entry", err)
	}
	return nil
}

func (r *OutboxRepository) Get(ctx context.Context, id uuid.UUID) (shared.OutboxEntry, error) {
	row, err := r.queries.GetOutbox(ctx, r.db, id)
	if err != nil {
		return shared.OutboxEntry{}, infra.WrapRepoErr("failed to get outbox entry", err)
	}
	return converter.OutboxFromRow(row), nil
}

func (r *OutboxRepository) PendingHeads(ctx context.Context, limit int, exclude []uuid.UUID) ([]shared.OutboxEntry, error) {
	if exclude == nil {
		exclude = []uuid.UUID{}
	}
	rows, err := r.queries.PendingOutboxHeads(ctx, r.db, pgconv.IntToInt32(limit), exclude)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending outbox heads", err)
	}
	out := make([]shared.OutboxEntry, len(rows))
	for i, row := range rows {
		out[i] = converter.OutboxFromRow(row)
	}
	return out, nil
}

// ClaimHead treats "no row" as a lost race, not an error: the entry is locked
// by another dispatcher, already published, or no longer the aggregate's head.
func (r *OutboxRepository) ClaimHead(ctx context.Context, id uuid.UUID) (shared.OutboxEntry, bool, error) {
	row, err := r.queries.ClaimOutboxHead(ctx, r.db, id)
	if err != nil {
		if errs.Is(err, pgx.ErrNoRows) {
			return shared.OutboxEntry{}, false, nil
		}
		return shared.OutboxEntry{}, false, infra.WrapRepoErr("failed to claim outbox entry", err)
	}
	return converter.OutboxFromRow(row), true, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.queries.MarkOutboxPublished(ctx, r.db, id, at); err != nil {
		return infra.WrapRepoErr("failed to mark outbox entry published", err)
	}
	return nil
}

func (r *OutboxRepository) RecordFailure(ctx context.Context, id uuid.UUID, lastError string) error {
	if err := r.queries.RecordOutboxFailure(ctx, r.db, id, lastError); err != nil {
		return infra.WrapRepoErr("failed to record outbox failure", err)
	}
	return nil
}

func (r *OutboxRepository) CountPending(ctx context.Context) (int, error) {
	n, err := r.queries.CountPendingOutbox(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count pending outbox entries", err)
	}
	return int(n), nil
}
