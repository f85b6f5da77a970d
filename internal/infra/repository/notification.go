package repository

import (
	"context"
	"time"

	"campus-placement/internal/domain/notification"
	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository/converter"
	"campus-placement/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	InsertNotification(ctx context.Context, db query.DBTX, arg query.Notification) (bool, error)
	ListNotificationsByRecipient(ctx context.Context, db query.DBTX, recipientID uuid.UUID, limit int32) ([]query.Notification, error)
	MarkNotificationRead(ctx context.Context, db query.DBTX, id, recipientID uuid.UUID, at time.Time) (bool, error)
	CountUnreadNotifications(ctx context.Context, db query.DBTX, recipientID uuid.UUID) (int64, error)
}

type NotificationRepository struct {
	queries NotificationQueries
	db      query.DBTX
}

func NewNotificationRepository(queries NotificationQueries, db query.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) InsertIfAbsent(ctx context.Context, n notification.Notification) (bool, error) {
	inserted, err := r.queries.InsertNotification(ctx, r.db, converter.NotificationToRow(n))
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert notification", err)
	}
	return inserted, nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error) {
	rows, err := r.queries.ListNotificationsByRecipient(ctx, r.db, recipientID, pgconv.IntToInt32(notification.ClampLimit(limit)))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	out := make([]notification.Notification, len(rows))
	for i, row := range rows {
		out[i] = converter.NotificationFromRow(row)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (bool, error) {
	found, err := r.queries.MarkNotificationRead(ctx, r.db, id, recipientID, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark notification read", err)
	}
	return found, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	n, err := r.queries.CountUnreadNotifications(ctx, r.db, recipientID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return int(n), nil
}
