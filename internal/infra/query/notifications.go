package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `id, outbox_id, recipient_id, recipient_role, title, message, category,
    related_opportunity_id, is_read, created_at, read_at`

const insertNotification = `
INSERT INTO notifications (` + notificationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (outbox_id, recipient_id) DO NOTHING`

// InsertNotification reports whether a row was written.
func (q *Queries) InsertNotification(ctx context.Context, db DBTX, arg Notification) (bool, error) {
	tag, err := db.Exec(ctx, insertNotification,
		arg.ID, arg.OutboxID, arg.RecipientID, arg.RecipientRole, arg.Title, arg.Message,
		arg.Category, arg.RelatedOpportunityID, arg.IsRead, arg.CreatedAt, arg.ReadAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const listNotificationsByRecipient = `
SELECT ` + notificationColumns + ` FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC, id
LIMIT $2`

func (q *Queries) ListNotificationsByRecipient(ctx context.Context, db DBTX, recipientID uuid.UUID, limit int32) ([]Notification, error) {
	rows, err := db.Query(ctx, listNotificationsByRecipient, recipientID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Notification])
}

// Already-read rows still count as found; read_at keeps its first value.
const markNotificationRead = `
UPDATE notifications
SET is_read = TRUE, read_at = COALESCE(read_at, $3)
WHERE id = $1 AND recipient_id = $2`

func (q *Queries) MarkNotificationRead(ctx context.Context, db DBTX, id, recipientID uuid.UUID, at time.Time) (bool, error) {
	tag, err := db.Exec(ctx, markNotificationRead, id, recipientID, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const countUnreadNotifications = `SELECT count(*) FROM notifications WHERE recipient_id = $1 AND NOT is_read`

func (q *Queries) CountUnreadNotifications(ctx context.Context, db DBTX, recipientID uuid.UUID) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countUnreadNotifications, recipientID).Scan(&n)
	return n, err
}
