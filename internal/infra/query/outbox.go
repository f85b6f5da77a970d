package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const outboxColumns = `id, seq, aggregate_id, event_type, payload, committed_at, published_at, attempt_count, last_error`

const appendOutbox = `
INSERT INTO outbox (id, aggregate_id, event_type, payload, committed_at)
VALUES ($1, $2, $3, $4, $5)`

func (q *Queries) AppendOutbox(ctx context.Context, db DBTX, arg OutboxEntry) error {
	_, err := db.Exec(ctx, appendOutbox, arg.ID, arg.AggregateID, arg.EventType, arg.Payload, arg.CommittedAt)
	return err
}

const getOutbox = `SELECT ` + outboxColumns + ` FROM outbox WHERE id = $1`

func (q *Queries) GetOutbox(ctx context.Context, db DBTX, id uuid.UUID) (OutboxEntry, error) {
	rows, err := db.Query(ctx, getOutbox, id)
	if err != nil {
		return OutboxEntry{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[OutboxEntry])
}

const pendingOutboxHeads = `
SELECT ` + outboxColumns + ` FROM (
    SELECT DISTINCT ON (aggregate_id) ` + outboxColumns + `
    FROM outbox
    WHERE published_at IS NULL
      AND aggregate_id <> ALL(COALESCE($2::uuid[], '{}'))
    ORDER BY aggregate_id, seq
) heads
ORDER BY seq
LIMIT $1`

func (q *Queries) PendingOutboxHeads(ctx context.Context, db DBTX, limit int32, exclude []uuid.UUID) ([]OutboxEntry, error) {
	rows, err := db.Query(ctx, pendingOutboxHeads, limit, exclude)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[OutboxEntry])
}

// A locked row is skipped rather than waited on, so a second dispatcher moves on
// to other aggregates instead of queueing behind the first.
const claimOutboxHead = `
SELECT ` + outboxColumns + ` FROM outbox o
WHERE o.id = $1
  AND o.published_at IS NULL
  AND NOT EXISTS (
      SELECT 1 FROM outbox p
      WHERE p.aggregate_id = o.aggregate_id
        AND p.published_at IS NULL
        AND p.seq < o.seq
  )
FOR UPDATE OF o SKIP LOCKED`

func (q *Queries) ClaimOutboxHead(ctx context.Context, db DBTX, id uuid.UUID) (OutboxEntry, error) {
	rows, err := db.Query(ctx, claimOutboxHead, id)
	if err != nil {
		return OutboxEntry{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[OutboxEntry])
}

const markOutboxPublished = `UPDATE outbox SET published_at = $2 WHERE id = $1 AND published_at IS NULL`

func (q *Queries) MarkOutboxPublished(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error {
	_, err := db.Exec(ctx, markOutboxPublished, id, at)
	return err
}

const recordOutboxFailure = `
UPDATE outbox SET attempt_count = attempt_count + 1, last_error = $2
WHERE id = $1`

func (q *Queries) RecordOutboxFailure(ctx context.Context, db DBTX, id uuid.UUID, lastError string) error {
	_, err := db.Exec(ctx, recordOutboxFailure, id, lastError)
	return err
}

const countPendingOutbox = `SELECT count(*) FROM outbox WHERE published_at IS NULL`

func (q *Queries) CountPendingOutbox(ctx context.Context, db DBTX) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countPendingOutbox).Scan(&n)
	return n, err
}
