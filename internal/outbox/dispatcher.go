package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/pkg/telemetry"
	"campus-placement/internal/usecase/shared"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const maxLastErrorLen = 1000

// Broadcaster accepts a live message for every subscriber of topic. A nil error
// means the message was accepted for delivery, not that anyone received it.
type Broadcaster interface {
	Publish(ctx context.Context, topic string, msg event.Message) error
}

// Dispatcher moves committed outbox entries to notifications and live pushes.
// Entries of one aggregate are published strictly in commit order.
type Dispatcher struct {
	uow         shared.UnitOfWork
	broadcaster Broadcaster
	clock       clock.Clock
	logger      *slog.Logger
	cfg         config.OutboxConfig

	kick chan struct{}

	mu       sync.Mutex
	deferred map[uuid.UUID]*retryState

	cancel context.CancelFunc
	done   chan struct{}
}

type retryState struct {
	backoff   *backoff.ExponentialBackOff
	notBefore time.Time
}

func NewDispatcher(
	uow shared.UnitOfWork,
	broadcaster Broadcaster,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.OutboxConfig,
) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Dispatcher{
		uow:         uow,
		broadcaster: broadcaster,
		clock:       clk,
		logger:      logger.With("component", "outbox_dispatcher"),
		cfg:         cfg,
		kick:        make(chan struct{}, 1),
		deferred:    make(map[uuid.UUID]*retryState),
	}
}

// Notify wakes the dispatcher without waiting for the next poll. Never blocks.
func (d *Dispatcher) Notify() {
	select {
	case d.kick <- struct{}{}:
	default:
	}
}

// Start runs the loop in the background until Stop.
func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	go func() {
		defer close(d.done)
		d.Run(ctx)
	}()
}

func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.cancel == nil {
		return nil
	}
	d.cancel()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run blocks until ctx is cancelled. Failures are logged and retried; the loop
// itself never gives up.
func (d *Dispatcher) Run(ctx context.Context) {
	listBackoff := d.newBackoff()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}

		published, err := d.RunOnce(ctx)
		if ctx.Err() != nil {
			return
		}

		var wait time.Duration
		switch {
		case err != nil:
			wait = listBackoff.NextBackOff()
			d.logger.Warn("outbox cycle failed", "error", err, "retry_in", wait)
		case published > 0:
			// a published head may have uncovered the next entry of its aggregate
			listBackoff.Reset()
			wait = 0
		default:
			listBackoff.Reset()
			wait = d.nextWake(time.Now())
		}
		timer.Reset(wait)
	}
}

// RunOnce processes the current heads once and reports how many were published.
// The error is non-nil only when the heads could not be listed.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	ctx, span := telemetry.Start(ctx, "outbox.cycle")
	var heads []shared.OutboxEntry
	// Deferred aggregates stay out of the batch so they cannot crowd out healthy ones.
	waiting := d.deferredIDs(time.Now())
	err := d.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		heads, err = tx.Outbox().PendingHeads(ctx, d.cfg.BatchSize, waiting)
		return err
	})
	if err != nil {
		telemetry.End(span, err)
		return 0, errs.Wrap(err, "list outbox heads")
	}

	published := 0
	skipped := make(map[uuid.UUID]struct{})
	for _, head := range heads {
		if ctx.Err() != nil {
			break
		}
		if _, ok := skipped[head.AggregateID]; ok || d.isDeferred(head.AggregateID, time.Now()) {
			continue
		}
		ok, err := d.publishHead(ctx, head.ID)
		if err != nil {
			skipped[head.AggregateID] = struct{}{}
			d.recordFailure(ctx, head, err)
			continue
		}
		if ok {
			published++
			d.clearDeferral(head.AggregateID)
		}
	}
	span.SetAttributes(attribute.Int("outbox.heads", len(heads)), attribute.Int("outbox.published", published))
	telemetry.End(span, nil)
	return published, nil
}

// publishHead claims one head, writes its notifications and hands its messages
// to the broadcaster. Any error rolls the whole step back.
func (d *Dispatcher) publishHead(ctx context.Context, id uuid.UUID) (bool, error) {
	published := false
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entry, ok, err := tx.Outbox().ClaimHead(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		env, recipients, err := decode(entry)
		if err != nil {
			return err
		}
		now := d.clock.Now()
		for _, r := range recipients {
			n, err := notification.FromEvent(entry.ID, env, r, now)
			if err != nil {
				return err
			}
			if _, err := tx.Notifications().InsertIfAbsent(ctx, n); err != nil {
				return err
			}
		}
		msgs, err := Messages(entry, env, recipients)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			if err := d.broadcaster.Publish(ctx, m.Topic, m); err != nil {
				return errs.Mark(errs.Wrapf(err, "publish to %s", m.Topic), errs.ErrDelivery)
			}
		}
		if err := tx.Outbox().MarkPublished(ctx, entry.ID, now); err != nil {
			return err
		}
		published = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if published {
		d.logger.Debug("outbox entry published", "outbox_id", id)
	}
	return published, nil
}

func (d *Dispatcher) recordFailure(ctx context.Context, head shared.OutboxEntry, cause error) {
	msg := cause.Error()
	if len(msg) > maxLastErrorLen {
		msg = msg[:maxLastErrorLen]
	}
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().RecordFailure(ctx, head.ID, msg)
	})
	wait := d.deferAggregate(head.AggregateID, time.Now())
	d.logger.Warn("outbox entry not published",
		"outbox_id", head.ID,
		"aggregate_id", head.AggregateID,
		"attempt", head.AttemptCount+1,
		"retry_in", wait,
		"error", cause,
	)
	if err != nil {
		d.logger.Error("failed to record outbox failure", "outbox_id", head.ID, "error", err)
	}
}

// Replay rebuilds the notifications of one entry without publishing anything.
// Existing notifications are left untouched.
func (d *Dispatcher) Replay(ctx context.Context, outboxID uuid.UUID) (int, error) {
	inserted := 0
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted = 0
		entry, err := tx.Outbox().Get(ctx, outboxID)
		if err != nil {
			return err
		}
		env, recipients, err := decode(entry)
		if err != nil {
			return err
		}
		createdAt := entry.CommittedAt
		if entry.PublishedAt != nil {
			createdAt = *entry.PublishedAt
		}
		for _, r := range recipients {
			n, err := notification.FromEvent(entry.ID, env, r, createdAt)
			if err != nil {
				return err
			}
			ok, err := tx.Notifications().InsertIfAbsent(ctx, n)
			if err != nil {
				return err
			}
			if ok {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, errs.Wrapf(err, "replay outbox entry %s", outboxID)
	}
	return inserted, nil
}

// Messages builds the live pushes for one entry: one per recipient topic plus
// the application room.
func Messages(entry shared.OutboxEntry, env event.Envelope, recipients []event.Recipient) ([]event.Message, error) {
	base := event.Message{
		EventID:       entry.ID,
		Type:          env.Type,
		Version:       env.Version,
		ApplicationID: env.ApplicationID,
		OpportunityID: env.OpportunityID,
		Data:          env.Display,
		OccurredAt:    entry.CommittedAt,
	}
	msgs := make([]event.Message, 0, len(recipients)+1)
	for _, r := range recipients {
		content, err := event.Render(env, r)
		if err != nil {
			return nil, err
		}
		m := base
		m.Topic = r.Topic()
		m.Title, m.Body, m.Category = content.Title, content.Message, content.Category
		msgs = append(msgs, m)
	}
	summary, err := event.RenderSummary(env)
	if err != nil {
		return nil, err
	}
	room := base
	room.Topic = event.ApplicationRoom(env.ApplicationID)
	room.Title, room.Body, room.Category = summary.Title, summary.Message, summary.Category
	return append(msgs, room), nil
}

func decode(entry shared.OutboxEntry) (event.Envelope, []event.Recipient, error) {
	env, err := event.Decode(entry.Payload)
	if err != nil {
		return event.Envelope{}, nil, err
	}
	recipients, err := event.Resolve(env)
	if err != nil {
		return event.Envelope{}, nil, errs.Wrapf(err, "resolve recipients of %s", env.Type)
	}
	return env, recipients, nil
}

func (d *Dispatcher) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if d.cfg.BackoffInitial > 0 {
		b.InitialInterval = d.cfg.BackoffInitial
	}
	if d.cfg.BackoffMax > 0 {
		b.MaxInterval = d.cfg.BackoffMax
	}
	b.Reset()
	return b
}

func (d *Dispatcher) deferAggregate(aggregateID uuid.UUID, now time.Time) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.deferred[aggregateID]
	if !ok {
		st = &retryState{backoff: d.newBackoff()}
		d.deferred[aggregateID] = st
	}
	wait := st.backoff.NextBackOff()
	st.notBefore = now.Add(wait)
	return wait
}

func (d *Dispatcher) isDeferred(aggregateID uuid.UUID, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.deferred[aggregateID]
	return ok && now.Before(st.notBefore)
}

func (d *Dispatcher) deferredIDs(now time.Time) []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	var ids []uuid.UUID
	for id, st := range d.deferred {
		if now.Before(st.notBefore) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (d *Dispatcher) clearDeferral(aggregateID uuid.UUID) {
	d.mu.Lock()
	delete(d.deferred, aggregateID)
	d.mu.Unlock()
}

// nextWake is the poll interval, shortened when a deferred aggregate becomes due sooner.
func (d *Dispatcher) nextWake(now time.Time) time.Duration {
	wait := d.cfg.PollInterval
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, st := range d.deferred {
		if until := st.notBefore.Sub(now); until < wait {
			wait = max(until, 0)
		}
	}
	return wait
}
