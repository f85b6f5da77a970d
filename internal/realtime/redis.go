package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

type relayEnvelope struct {
	Topic   string        `json:"topic"`
	Message event.Message `json:"message"`
}

// RedisBroadcaster publishes through a Redis channel so every instance's hub
// sees every message. Acceptance means Redis took the PUBLISH.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	local   *Hub
	logger  *slog.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewRedisBroadcaster(client *redis.Client, channel string, local *Hub, logger *slog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client:  client,
		channel: channel,
		local:   local,
		logger:  logger.With("component", "redis_relay", "channel", channel),
	}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, topic string, msg event.Message) error {
	payload, err := json.Marshal(relayEnvelope{Topic: topic, Message: msg})
	if err != nil {
		return errs.Wrap(err, "encode relay message")
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "redis publish"), errs.ErrDelivery)
	}
	return nil
}

// Start subscribes before returning, so nothing published afterwards is missed,
// then relays into the local hub until Stop.
func (b *RedisBroadcaster) Start(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return errs.Wrap(err, "subscribe relay channel")
	}

	b.mu.Lock()
	b.pubsub = pubsub
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	go func() {
		defer close(done)
		b.relay(pubsub.Channel())
	}()
	return nil
}

func (b *RedisBroadcaster) relay(ch <-chan *redis.Message) {
	for m := range ch {
		var env relayEnvelope
		if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
			b.logger.Warn("discarding malformed relay message", "error", err)
			continue
		}
		if err := b.local.Publish(context.Background(), env.Topic, env.Message); err != nil {
			b.logger.Warn("local hub rejected relayed message", "topic", env.Topic, "error", err)
		}
	}
}

func (b *RedisBroadcaster) Stop(ctx context.Context) error {
	b.mu.Lock()
	pubsub, done := b.pubsub, b.done
	b.pubsub = nil
	b.mu.Unlock()
	if pubsub == nil {
		return nil
	}
	if err := pubsub.Close(); err != nil {
		b.logger.Warn("failed to close relay subscription", "error", err)
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
