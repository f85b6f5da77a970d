//go:build unit

package realtime_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/realtime"
	"campus-placement/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newHub(cfg config.RealtimeConfig) *realtime.Hub {
	return realtime.NewHub(realtime.NewRegistry(), cfg, slog.New(slog.DiscardHandler))
}

func message(n int) event.Message {
	return event.Message{
		EventID:    uuid.New(),
		Type:       event.TypeRoundOutcome,
		Version:    n,
		OccurredAt: time.Date(2026, 3, 2, 9, 0, n, 0, time.UTC),
	}
}

func receive(t *testing.T, c *realtime.Client) event.Message {
	t.Helper()
	select {
	case msg := <-c.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message queued")
		return event.Message{}
	}
}

func TestHub_ConnectSubscribesIdentityTopics(t *testing.T) {
	hub := newHub(config.NewTestConfig().Realtime)
	orgID := uuid.New()
	recruiter := builder.Recruiter(t, orgID)

	c, err := hub.Connect(recruiter)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		user.UserTopic(recruiter.UserID),
		user.OrganizationTopic(orgID),
		user.RoleTopic(user.RoleCompany),
	}, hub.Topics(c))
	assert.Equal(t, 1, hub.ConnectionCount())

	_, err = hub.Connect(user.Identity{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, realtime.ErrUnverified))
}

func TestHub_PublishRoutesByTopic(t *testing.T) {
	ctx := context.Background()
	hub := newHub(config.NewTestConfig().Realtime)
	studentID := uuid.New()
	orgID := uuid.New()

	laptop, err := hub.Connect(builder.Student(t, studentID))
	require.NoError(t, err)
	phone, err := hub.Connect(builder.Student(t, studentID))
	require.NoError(t, err)
	recruiter, err := hub.Connect(builder.Recruiter(t, orgID))
	require.NoError(t, err)

	require.NoError(t, hub.Publish(ctx, user.UserTopic(studentID), message(1)))

	for _, c := range []*realtime.Client{laptop, phone} {
		got := receive(t, c)
		assert.Equal(t, user.UserTopic(studentID), got.Topic)
		assert.Equal(t, 1, got.Version)
	}
	assert.Empty(t, recruiter.Messages())

	// Nobody listening is not a failure.
	require.NoError(t, hub.Publish(ctx, user.UserTopic(uuid.New()), message(2)))
}

func TestHub_Rooms(t *testing.T) {
	ctx := context.Background()
	hub := newHub(config.NewTestConfig().Realtime)
	room := event.ApplicationRoom(uuid.New())

	c, err := hub.Connect(builder.Student(t, uuid.New()))
	require.NoError(t, err)

	require.NoError(t, hub.Join(c, room))
	require.NoError(t, hub.Publish(ctx, room, message(1)))
	assert.Equal(t, room, receive(t, c).Topic)

	hub.Leave(c, room)
	require.NoError(t, hub.Publish(ctx, room, message(2)))
	assert.Empty(t, c.Messages())

	hub.Disconnect(c)
	err = hub.Join(c, room)
	require.Error(t, err)
	assert.True(t, errs.Is(err, realtime.ErrNotRegistered))
	assert.Equal(t, 0, hub.ConnectionCount())

	select {
	case <-c.Done():
	default:
		t.Fatal("disconnected client should be done")
	}
}

func TestHub_SlowSubscriberDropsOldest(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Realtime
	cfg.SendQueue = 2
	cfg.MaxDrops = 10
	hub := newHub(cfg)
	studentID := uuid.New()

	c, err := hub.Connect(builder.Student(t, studentID))
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		require.NoError(t, hub.Publish(ctx, user.UserTopic(studentID), message(i)))
	}

	assert.Equal(t, 3, receive(t, c).Version)
	assert.Equal(t, 4, receive(t, c).Version)
	assert.EqualValues(t, 2, hub.Dropped())
	assert.Equal(t, 1, hub.ConnectionCount())
}

func TestHub_DisconnectsAfterTooManyDrops(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Realtime
	cfg.SendQueue = 1
	cfg.MaxDrops = 3
	hub := newHub(cfg)
	studentID := uuid.New()

	slow, err := hub.Connect(builder.Student(t, studentID))
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		require.NoError(t, hub.Publish(ctx, user.UserTopic(studentID), message(i)))
	}

	select {
	case <-slow.Done():
	case <-time.After(time.Second):
		t.Fatal("slow subscriber was not disconnected")
	}
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_Close(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := newHub(config.NewTestConfig().Realtime)
	a, err := hub.Connect(builder.Student(t, uuid.New()))
	require.NoError(t, err)
	b, err := hub.Connect(builder.Admin(t, uuid.New()))
	require.NoError(t, err)

	hub.Close()
	hub.Close()

	for _, c := range []*realtime.Client{a, b} {
		<-c.Done()
	}
	assert.Equal(t, 0, hub.ConnectionCount())

	err = hub.Publish(context.Background(), user.RoleTopic(user.RoleAdmin), message(1))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDelivery))

	_, err = hub.Connect(builder.Student(t, uuid.New()))
	assert.True(t, errs.Is(err, realtime.ErrHubClosed))
}
