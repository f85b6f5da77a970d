//go:build unit

package outbox_test

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/infra/memory"
	"campus-placement/internal/outbox"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/testutil/builder"
	"campus-placement/internal/usecase/commands"
	"campus-placement/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls int
	msgs  []event.Message
	fail  func(topic string, call int) error
}

func (b *recordingBroadcaster) Publish(_ context.Context, topic string, msg event.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.fail != nil {
		if err := b.fail(topic, b.calls); err != nil {
			return err
		}
	}
	b.msgs = append(b.msgs, msg)
	return nil
}

// firstSeen lists the event types delivered to topic, ignoring redeliveries.
func (b *recordingBroadcaster) firstSeen(topic string) []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []event.Type
	for _, m := range b.msgs {
		if m.Topic != topic || seen[m.EventID] {
			continue
		}
		seen[m.EventID] = true
		out = append(out, m.Type)
	}
	return out
}

type noopNotifier struct{}

func (noopNotifier) Notify() {}

// flakyUoW fails every nth write transaction before it starts.
type flakyUoW struct {
	shared.UnitOfWork
	every int64
	calls atomic.Int64
}

func (u *flakyUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.calls.Add(1)%u.every == 0 {
		return errs.Mark(errs.New("connection reset by peer"), errs.ErrTransientStore)
	}
	return u.UnitOfWork.Within(ctx, fn)
}

type fixture struct {
	store     *memory.Store
	uow       *memory.UnitOfWork
	clock     clock.Clock
	opp       opportunity.Opportunity
	candidate opportunity.CandidateProfile
	student   user.Identity
	recruiter user.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	opp := builder.NewOpportunityBuilder().Build()
	candidate := builder.NewCandidateBuilder().Build()
	store.PutOpportunity(opp)
	store.PutCandidate(candidate)
	return &fixture{
		store:     store,
		uow:       memory.NewUnitOfWork(store),
		clock:     clock.NewTickingClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), time.Second),
		opp:       opp,
		candidate: candidate,
		student:   builder.Student(t, candidate.CandidateID),
		recruiter: builder.Recruiter(t, opp.OrganizationID),
	}
}

func (f *fixture) addCandidate(t *testing.T) (opportunity.CandidateProfile, user.Identity) {
	t.Helper()
	p := builder.NewCandidateBuilder().Build()
	f.store.PutCandidate(p)
	return p, builder.Student(t, p.CandidateID)
}

func (f *fixture) dispatcher(uow shared.UnitOfWork, b outbox.Broadcaster, cfg config.OutboxConfig) *outbox.Dispatcher {
	return outbox.NewDispatcher(uow, b, f.clock, slog.New(slog.DiscardHandler), cfg)
}

func testOutboxConfig() config.OutboxConfig {
	return config.NewTestConfig().Outbox
}

func drain(t *testing.T, d *outbox.Dispatcher) {
	t.Helper()
	for range 20 {
		n, err := d.RunOnce(context.Background())
		require.NoError(t, err)
		if n == 0 {
			return
		}
	}
	t.Fatal("outbox did not drain")
}

func TestDispatcher_HappyPathDeliversDurableAndLive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &recordingBroadcaster{}
	d := f.dispatcher(f.uow, b, testOutboxConfig())
	apps := commands.NewApplicationUseCase(f.uow, f.clock, noopNotifier{})
	offers := commands.NewOfferUseCase(f.uow, f.clock, noopNotifier{})

	applied, err := apps.Apply(ctx, f.opp.ID, f.student)
	require.NoError(t, err)
	appID := applied.Application.ID

	for i, name := range []string{"Aptitude", "Technical Interview", "HR Interview"} {
		_, err := apps.RecordRoundOutcome(ctx, commands.RecordRoundRequest{
			ApplicationID: appID,
			RoundNumber:   i + 1,
			RoundName:     name,
			Outcome:       application.RoundSelected,
		}, f.recruiter)
		require.NoError(t, err)
	}
	created, err := offers.CreateOffer(ctx, commands.CreateOfferRequest{
		ApplicationID:     appID,
		Compensation:      1_200_000,
		ProposedStartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}, f.recruiter)
	require.NoError(t, err)

	drain(t, d)

	candidateInbox := f.store.Notifications(f.candidate.CandidateID)
	require.Len(t, candidateInbox, 5)
	var got []string
	for _, n := range candidateInbox {
		got = append(got, n.Category)
	}
	want := []string{event.CategoryOffer, event.CategoryRound, event.CategoryRound, event.CategoryRound, event.CategoryApplication}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate inbox categories mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Offer received", candidateInbox[0].Title)
	assert.Len(t, f.store.Notifications(f.opp.OrganizationID), 1)

	_, err = offers.RespondToOffer(ctx, created.Offer.ID, offer.DecisionAccept, f.student)
	require.NoError(t, err)
	drain(t, d)

	orgInbox := f.store.Notifications(f.opp.OrganizationID)
	require.Len(t, orgInbox, 2)
	assert.Equal(t, "Offer accepted", orgInbox[0].Title)
	assert.Len(t, f.store.Notifications(f.candidate.CandidateID), 5)

	for _, e := range f.store.OutboxEntries() {
		assert.NotNil(t, e.PublishedAt, "entry %s left pending", e.ID)
	}

	wantLive := []event.Type{
		event.TypeApplicationSubmitted,
		event.TypeRoundOutcome,
		event.TypeRoundOutcome,
		event.TypeRoundOutcome,
		event.TypeOfferCreated,
	}
	if diff := cmp.Diff(wantLive, b.firstSeen(user.UserTopic(f.candidate.CandidateID))); diff != "" {
		t.Errorf("live order mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, b.firstSeen(event.ApplicationRoom(appID)), 6)
}

func TestDispatcher_BroadcasterFailureRollsBackAndRetries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &recordingBroadcaster{fail: func(_ string, call int) error {
		if call == 1 {
			return errs.New("broadcast down")
		}
		return nil
	}}
	d := f.dispatcher(f.uow, b, testOutboxConfig())
	apps := commands.NewApplicationUseCase(f.uow, f.clock, noopNotifier{})

	_, err := apps.Apply(ctx, f.opp.ID, f.student)
	require.NoError(t, err)

	n, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	entries := f.store.OutboxEntries()
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].PublishedAt)
	assert.Equal(t, 1, entries[0].AttemptCount)
	assert.Contains(t, entries[0].LastError, "broadcast down")
	assert.Empty(t, f.store.Notifications(f.candidate.CandidateID), "notifications must roll back with the failed publish")

	require.Eventually(t, func() bool {
		n, err := d.RunOnce(ctx)
		return err == nil && n == 1
	}, time.Second, 5*time.Millisecond)

	assert.Len(t, f.store.Notifications(f.candidate.CandidateID), 1)
	assert.Len(t, f.store.Notifications(f.opp.OrganizationID), 1)
	assert.NotNil(t, f.store.OutboxEntries()[0].PublishedAt)
}

func TestDispatcher_FailingAggregateDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other, otherStudent := f.addCandidate(t)
	blocked := user.UserTopic(f.candidate.CandidateID)
	b := &recordingBroadcaster{fail: func(topic string, _ int) error {
		if topic == blocked {
			return errs.New("subscriber gone")
		}
		return nil
	}}
	d := f.dispatcher(f.uow, b, testOutboxConfig())
	apps := commands.NewApplicationUseCase(f.uow, f.clock, noopNotifier{})

	_, err := apps.Apply(ctx, f.opp.ID, f.student)
	require.NoError(t, err)
	_, err = apps.Apply(ctx, f.opp.ID, otherStudent)
	require.NoError(t, err)

	n, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, f.store.Notifications(other.CandidateID), 1)
	assert.Empty(t, f.store.Notifications(f.candidate.CandidateID))
}

func TestDispatcher_DeferredAggregateLeavesRoomInBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other, otherStudent := f.addCandidate(t)
	blocked := user.UserTopic(f.candidate.CandidateID)
	b := &recordingBroadcaster{fail: func(topic string, _ int) error {
		if topic == blocked {
			return errs.New("subscriber gone")
		}
		return nil
	}}
	cfg := testOutboxConfig()
	cfg.BatchSize = 1
	cfg.BackoffInitial = time.Hour
	cfg.BackoffMax = time.Hour
	d := f.dispatcher(f.uow, b, cfg)
	apps := commands.NewApplicationUseCase(f.uow, f.clock, noopNotifier{})

	// the failing aggregate holds the oldest head
	_, err := apps.Apply(ctx, f.opp.ID, f.student)
	require.NoError(t, err)
	_, err = apps.Apply(ctx, f.opp.ID, otherStudent)
	require.NoError(t, err)

	n, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, f.store.Notifications(other.CandidateID), 1)
	assert.Empty(t, f.store.Notifications(f.candidate.CandidateID))
}

func TestDispatcher_EventuallyPublishesUnderFlakiness(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	f := newFixture(t)
	b := &recordingBroadcaster{fail: func(string, int) error {
		if rand.IntN(10) < 3 {
			return errs.New("intermittent")
		}
		return nil
	}}
	d := f.dispatcher(&flakyUoW{UnitOfWork: f.uow, every: 3}, b, testOutboxConfig())
	apps := commands.NewApplicationUseCase(f.uow, f.clock, d)

	d.Start()

	var students []opportunity.CandidateProfile
	for range 4 {
		p, id := f.addCandidate(t)
		students = append(students, p)
		applied, err := apps.Apply(ctx, f.opp.ID, id)
		require.NoError(t, err)
		for round := 1; round <= 2; round++ {
			_, err := apps.RecordRoundOutcome(ctx, commands.RecordRoundRequest{
				ApplicationID: applied.Application.ID,
				RoundNumber:   round,
				Outcome:       application.RoundSelected,
			}, f.recruiter)
			require.NoError(t, err)
		}
	}

	require.Eventually(t, func() bool {
		for _, e := range f.store.OutboxEntries() {
			if e.PublishedAt == nil {
				return false
			}
		}
		return true
	}, 5*time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, d.Stop(stopCtx))

	want := []event.Type{event.TypeApplicationSubmitted, event.TypeRoundOutcome, event.TypeRoundOutcome}
	for _, p := range students {
		assert.Len(t, f.store.Notifications(p.CandidateID), 3, "exactly one durable record per event")
		if diff := cmp.Diff(want, b.firstSeen(user.UserTopic(p.CandidateID))); diff != "" {
			t.Errorf("live order for %s (-want +got):\n%s", p.CandidateID, diff)
		}
	}
	assert.Len(t, f.store.Notifications(f.opp.OrganizationID), 4)
}

func TestDispatcher_NotifyWakesLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	f := newFixture(t)
	cfg := testOutboxConfig()
	cfg.PollInterval = time.Hour
	d := f.dispatcher(f.uow, &recordingBroadcaster{}, cfg)
	apps := commands.NewApplicationUseCase(f.uow, f.clock, d)

	d.Start()
	defer func() { require.NoError(t, d.Stop(ctx)) }()

	// let the initial cycle find nothing
	time.Sleep(20 * time.Millisecond)

	_, err := apps.Apply(ctx, f.opp.ID, f.student)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.store.Notifications(f.candidate.CandidateID)) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDispatcher_StopWithoutStart(t *testing.T) {
	f := newFixture(t)
	d := f.dispatcher(f.uow, &recordingBroadcaster{}, testOutboxConfig())
	assert.NoError(t, d.Stop(context.Background()))
	d.Notify()
	d.Notify()
}

func TestDispatcher_Replay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.dispatcher(f.uow, &recordingBroadcaster{}, testOutboxConfig())
	apps := commands.NewApplicationUseCase(f.uow, f.clock, noopNotifier{})

	applied, err := apps.Apply(ctx, f.opp.ID, f.student)
	require.NoError(t, err)

	inserted, err := d.Replay(ctx, applied.EventID)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = d.Replay(ctx, applied.EventID)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	assert.Nil(t, f.store.OutboxEntries()[0].PublishedAt, "replay never publishes")

	// publishing afterwards must not duplicate the replayed records
	drain(t, d)
	assert.Len(t, f.store.Notifications(f.candidate.CandidateID), 1)

	_, err = d.Replay(ctx, uuid.New())
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestMessages(t *testing.T) {
	env := event.Envelope{
		Version:        event.PayloadVersion,
		Type:           event.TypeApplicationSubmitted,
		ApplicationID:  uuid.New(),
		OpportunityID:  uuid.New(),
		CandidateID:    uuid.New(),
		OrganizationID: uuid.New(),
		Display:        event.Display{OpportunityTitle: "Data Analyst", CandidateName: "Ravi", OverallStatus: "APPLIED"},
	}
	recipients, err := event.Resolve(env)
	require.NoError(t, err)
	entry := shared.OutboxEntry{ID: uuid.New(), AggregateID: env.ApplicationID, CommittedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	msgs, err := outbox.Messages(entry, env, recipients)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	topics := make([]string, len(msgs))
	for i, m := range msgs {
		topics[i] = m.Topic
		assert.Equal(t, entry.ID, m.EventID)
		assert.Equal(t, entry.CommittedAt, m.OccurredAt)
	}
	want := []string{
		user.OrganizationTopic(env.OrganizationID),
		user.UserTopic(env.CandidateID),
		event.ApplicationRoom(env.ApplicationID),
	}
	if diff := cmp.Diff(want, topics); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Ravi applied for Data Analyst.", msgs[0].Body)
	assert.Equal(t, "Application received", msgs[1].Title)
	assert.True(t, strings.HasPrefix(msgs[2].Body, "Ravi applied"))
}
