package realtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrHubClosed = errs.Define(errs.ErrDelivery, "realtime hub is closed")

// Client is one live connection's outbound side. Messages are queued in a
// bounded buffer; when it is full the oldest message is dropped.
type Client struct {
	id       string
	identity user.Identity
	send     chan event.Message

	mu    sync.Mutex
	drops int

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(identity user.Identity, queueSize int) *Client {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Client{
		id:       uuid.NewString(),
		identity: identity,
		send:     make(chan event.Message, queueSize),
		done:     make(chan struct{}),
	}
}

func (c *Client) ID() string              { return c.id }
func (c *Client) Identity() user.Identity { return c.identity }

// Messages is drained by the connection's writer.
func (c *Client) Messages() <-chan event.Message { return c.send }

// Done is closed once the client has been disconnected.
func (c *Client) Done() <-chan struct{} { return c.done }

// enqueue never blocks. It reports whether an older message was discarded and
// how many consecutive enqueues have had to discard one.
func (c *Client) enqueue(msg event.Message) (dropped bool, streak int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- msg:
		c.drops = 0
		return false, 0
	default:
	}

	select {
	case <-c.send:
	default:
	}
	select {
	case c.send <- msg:
	default:
	}
	c.drops++
	return true, c.drops
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Hub is the process-local broadcaster. Publish only hands messages to
// per-connection queues; writing to sockets happens in each session.
type Hub struct {
	registry  *Registry
	logger    *slog.Logger
	queueSize int
	maxDrops  int

	closed  atomic.Bool
	dropped atomic.Int64
}

func NewHub(registry *Registry, cfg config.RealtimeConfig, logger *slog.Logger) *Hub {
	return &Hub{
		registry:  registry,
		logger:    logger.With("component", "realtime_hub"),
		queueSize: cfg.SendQueue,
		maxDrops:  cfg.MaxDrops,
	}
}

// Connect registers a verified identity and returns its client.
func (h *Hub) Connect(identity user.Identity) (*Client, error) {
	if h.closed.Load() {
		return nil, ErrHubClosed
	}
	c := newClient(identity, h.queueSize)
	if err := h.registry.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (h *Hub) Disconnect(c *Client) {
	h.registry.Unregister(c)
	c.close()
}

func (h *Hub) Join(c *Client, topic string) error {
	return h.registry.Join(c, topic)
}

func (h *Hub) Leave(c *Client, topic string) {
	h.registry.Leave(c, topic)
}

func (h *Hub) Topics(c *Client) []string {
	return h.registry.Topics(c)
}

// Publish fans msg out to every current subscriber of topic. A nil error means
// the hub accepted the message; a subscriber that is gone or slow does not fail it.
func (h *Hub) Publish(_ context.Context, topic string, msg event.Message) error {
	if h.closed.Load() {
		return ErrHubClosed
	}
	msg.Topic = topic
	for _, c := range h.registry.Subscribers(topic) {
		dropped, streak := c.enqueue(msg)
		if !dropped {
			continue
		}
		h.dropped.Add(1)
		h.logger.Warn("dropped oldest queued message",
			"conn_id", c.id,
			"user_id", c.identity.UserID,
			"topic", topic,
			"streak", streak,
		)
		if h.maxDrops > 0 && streak >= h.maxDrops {
			h.logger.Warn("disconnecting slow subscriber", "conn_id", c.id, "user_id", c.identity.UserID)
			h.Disconnect(c)
		}
	}
	return nil
}

// Dropped counts messages discarded because a subscriber's queue was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

func (h *Hub) ConnectionCount() int {
	return h.registry.Len()
}

// Close refuses further publishes and disconnects every client.
func (h *Hub) Close() {
	if h.closed.Swap(true) {
		return
	}
	for _, c := range h.registry.Clients() {
		h.Disconnect(c)
	}
}
