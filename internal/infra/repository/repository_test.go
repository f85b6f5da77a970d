//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/event"
	"campus-placement/internal/infra"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/repository"
	repositorymock "campus-placement/internal/mocks/repository"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockDBTX is never called; the query mocks stand in for SQL.
type mockDBTX struct{}

func (mockDBTX) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (mockDBTX) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (mockDBTX) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

var now = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

// =============================================================================
// Application Repository Tests
// =============================================================================

func TestApplicationRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		dbErr      error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: application created"},
		{
			name:       "error: duplicate candidate and opportunity",
			dbErr:      &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: database failure",
			dbErr:      errors.New("database connection error"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockApplicationQueries(ctrl)
			db := mockDBTX{}
			repo := repository.NewApplicationRepository(mockQueries, db)

			app := application.Application{
				ID:            uuid.New(),
				CandidateID:   uuid.New(),
				OpportunityID: uuid.New(),
				OverallStatus: application.StatusApplied,
				AppliedAt:     now,
				UpdatedAt:     now,
			}
			mockQueries.EXPECT().
				CreateApplication(ctx, db, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.Application) error {
					assert.Equal(t, app.ID, arg.ID)
					assert.Equal(t, "APPLIED", arg.OverallStatus)
					return tc.dbErr
				})

			err := repo.Create(ctx, app)

			if tc.expectKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind))
		})
	}
}

func TestApplicationRepository_GetForUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockApplicationQueries(ctrl)
	db := mockDBTX{}
	repo := repository.NewApplicationRepository(mockQueries, db)

	id := uuid.New()
	mockQueries.EXPECT().GetApplicationForUpdate(ctx, db, id).Return(query.Application{}, pgx.ErrNoRows)

	_, err := repo.GetForUpdate(ctx, id)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestApplicationRepository_Update_NoRows(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockApplicationQueries(ctrl)
	db := mockDBTX{}
	repo := repository.NewApplicationRepository(mockQueries, db)

	mockQueries.EXPECT().UpdateApplication(ctx, db, gomock.Any()).Return(int64(0), nil)

	err := repo.Update(ctx, application.Application{ID: uuid.New()})

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

// =============================================================================
// Outbox Repository Tests
// =============================================================================

func TestOutboxRepository_ClaimHead(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	aggregateID := uuid.New()

	testCases := []struct {
		name      string
		row       query.OutboxEntry
		dbErr     error
		expectOK  bool
		expectErr bool
	}{
		{
			name: "success: head claimed",
			row: query.OutboxEntry{
				ID: id, Seq: 7, AggregateID: aggregateID, EventType: string(event.TypeRoundOutcome),
				Payload: []byte(`{"v":1}`), CommittedAt: now, AttemptCount: 2,
				LastError: pgtype.Text{String: "relay down", Valid: true},
			},
			expectOK: true,
		},
		{name: "skipped: locked or not the head", dbErr: pgx.ErrNoRows},
		{name: "error: database failure", dbErr: errors.New("connection refused"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockOutboxQueries(ctrl)
			db := mockDBTX{}
			repo := repository.NewOutboxRepository(mockQueries, db)

			mockQueries.EXPECT().ClaimOutboxHead(ctx, db, id).Return(tc.row, tc.dbErr)

			entry, ok, err := repo.ClaimHead(ctx, id)

			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectOK, ok)
			if !tc.expectOK {
				return
			}
			want := shared.OutboxEntry{
				ID: id, Seq: 7, AggregateID: aggregateID, EventType: event.TypeRoundOutcome,
				Payload: []byte(`{"v":1}`), CommittedAt: now, AttemptCount: 2, LastError: "relay down",
			}
			if diff := cmp.Diff(want, entry); diff != "" {
				t.Errorf("outbox entry mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOutboxRepository_PendingHeads(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockOutboxQueries(ctrl)
	db := mockDBTX{}
	repo := repository.NewOutboxRepository(mockQueries, db)

	rows := []query.OutboxEntry{
		{ID: uuid.New(), Seq: 1, AggregateID: uuid.New(), CommittedAt: now},
		{ID: uuid.New(), Seq: 4, AggregateID: uuid.New(), CommittedAt: now,
			PublishedAt: pgtype.Timestamptz{Valid: false}},
	}
	excluded := []uuid.UUID{uuid.New()}
	mockQueries.EXPECT().PendingOutboxHeads(ctx, db, int32(100), excluded).Return(rows, nil)

	heads, err := repo.PendingHeads(ctx, 100, excluded)

	require.NoError(t, err)
	require.Len(t, heads, 2)
	assert.Equal(t, int64(1), heads[0].Seq)
	assert.Nil(t, heads[1].PublishedAt)
}

func TestOutboxRepository_PendingHeadsWithoutExclusions(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockOutboxQueries(ctrl)
	db := mockDBTX{}
	repo := repository.NewOutboxRepository(mockQueries, db)

	// a nil list is sent as an empty array so the filter keeps every aggregate
	mockQueries.EXPECT().PendingOutboxHeads(ctx, db, int32(10), []uuid.UUID{}).Return(nil, nil)

	heads, err := repo.PendingHeads(ctx, 10, nil)

	require.NoError(t, err)
	assert.Empty(t, heads)
}

func TestOutboxRepository_TransientFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockOutboxQueries(ctrl)
	db := mockDBTX{}
	repo := repository.NewOutboxRepository(mockQueries, db)

	id := uuid.New()
	mockQueries.EXPECT().
		MarkOutboxPublished(ctx, db, id, now).
		Return(&pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"})

	err := repo.MarkPublished(ctx, id, now)

	require.Error(t, err)
	assert.True(t, errs.IsRetryable(err))
}
