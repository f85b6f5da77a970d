package queries

import (
	"context"

	"campus-placement/internal/domain/notification"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	ListNotifications(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error)
	// MarkNotificationRead reports found=false for unknown ids and ids owned by someone else.
	MarkNotificationRead(ctx context.Context, id, recipientID uuid.UUID) (found bool, err error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error)
}

type notificationQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewNotificationQueries(uow shared.UnitOfWork, clk clock.Clock) NotificationQueries {
	return &notificationQueriesImpl{uow: uow, clock: clk}
}

func (q *notificationQueriesImpl) ListNotifications(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error) {
	var list []notification.Notification
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		list, err = tx.Notifications().ListByRecipient(ctx, recipientID, notification.ClampLimit(limit))
		return err
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []notification.Notification{}
	}
	return list, nil
}

func (q *notificationQueriesImpl) MarkNotificationRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	var found bool
	err := q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Notifications().MarkRead(ctx, id, recipientID, q.clock.Now())
		return err
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (q *notificationQueriesImpl) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var n int
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Notifications().CountUnread(ctx, recipientID)
		return err
	})
	return n, err
}
