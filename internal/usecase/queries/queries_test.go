//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/infra/memory"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/testutil/builder"
	"campus-placement/internal/usecase/commands"
	"campus-placement/internal/usecase/queries"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopNotifier struct{}

func (noopNotifier) Notify() {}

func TestApplicationQueries_Visibility(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)
	clk := clock.NewTickingClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), time.Second)
	apps := commands.NewApplicationUseCase(uow, clk, noopNotifier{})
	q := queries.NewApplicationQueries(uow)

	opp := builder.NewOpportunityBuilder().Build()
	candidate := builder.NewCandidateBuilder().Build()
	store.PutOpportunity(opp)
	store.PutCandidate(candidate)
	student := builder.Student(t, candidate.CandidateID)
	recruiter := builder.Recruiter(t, opp.OrganizationID)

	applied, err := apps.Apply(ctx, opp.ID, student)
	require.NoError(t, err)
	_, err = apps.RecordRoundOutcome(ctx, commands.RecordRoundRequest{
		ApplicationID: applied.Application.ID, RoundNumber: 1, RoundName: "Aptitude", Outcome: application.RoundSelected,
	}, recruiter)
	require.NoError(t, err)

	tests := []struct {
		name    string
		viewer  user.Identity
		visible bool
	}{
		{name: "owning candidate", viewer: student, visible: true},
		{name: "owning organization", viewer: recruiter, visible: true},
		{name: "admin of the owning organization", viewer: builder.Admin(t, opp.OrganizationID), visible: true},
		{name: "another candidate", viewer: builder.Student(t, uuid.New())},
		{name: "another organization", viewer: builder.Recruiter(t, uuid.New())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := q.GetApplication(ctx, applied.Application.ID, tt.viewer)
			joinable, joinErr := q.CanJoinApplicationRoom(ctx, tt.viewer, applied.Application.ID)
			require.NoError(t, joinErr)
			assert.Equal(t, tt.visible, joinable)

			if !tt.visible {
				assert.True(t, errs.Is(err, application.ErrNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, application.StatusInProgress, view.Application.OverallStatus)
			require.Len(t, view.Rounds, 1)
			assert.Equal(t, "Aptitude", view.Rounds[0].RoundName)
			assert.Nil(t, view.Offer)
			assert.Equal(t, opp.Title, view.Opportunity.Title)
		})
	}

	t.Run("unknown application", func(t *testing.T) {
		_, err := q.GetApplication(ctx, uuid.New(), student)
		assert.True(t, errs.Is(err, application.ErrNotFound))
	})

	t.Run("list mine", func(t *testing.T) {
		mine, err := q.ListMyApplications(ctx, student)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, applied.Application.ID, mine[0].ID)

		none, err := q.ListMyApplications(ctx, recruiter)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestNotificationQueries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	q := queries.NewNotificationQueries(uow, clk)

	recipient := uuid.New()
	var ids []uuid.UUID
	err := uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for i := range 3 {
			n := notification.Notification{
				ID:            uuid.New(),
				OutboxID:      uuid.New(),
				RecipientID:   recipient,
				RecipientRole: user.RoleStudent,
				Title:         "Round result",
				Message:       "selected",
				Category:      "ROUND",
				CreatedAt:     clk.Now().Add(time.Duration(i) * time.Minute),
			}
			ids = append(ids, n.ID)
			if _, err := tx.Notifications().InsertIfAbsent(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	list, err := q.ListNotifications(ctx, recipient, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID, "newest first")

	list, err = q.ListNotifications(ctx, recipient, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := q.ListNotifications(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	count, err := q.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	found, err := q.MarkNotificationRead(ctx, ids[0], uuid.New())
	require.NoError(t, err)
	assert.False(t, found, "foreign recipient")

	found, err = q.MarkNotificationRead(ctx, uuid.New(), recipient)
	require.NoError(t, err)
	assert.False(t, found, "unknown id")

	found, err = q.MarkNotificationRead(ctx, ids[0], recipient)
	require.NoError(t, err)
	assert.True(t, found)

	count, err = q.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
