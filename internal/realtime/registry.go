package realtime

import (
	"slices"
	"sync"

	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUnverified    = errs.Define(errs.ErrForbidden, "connection has no verified identity")
	ErrNotRegistered = errs.Define(errs.ErrNotFound, "connection is not registered")
)

// Registry maps connections to the topics they listen on. Every connection is
// subscribed to its identity topics on Register; rooms are joined explicitly.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*membership
	topics map[string]map[string]*Client
}

type membership struct {
	client *Client
	topics map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[string]*membership),
		topics: make(map[string]map[string]*Client),
	}
}

func (r *Registry) Register(c *Client) error {
	if c == nil || c.identity.UserID == uuid.Nil {
		return ErrUnverified
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c.id]; ok {
		return nil
	}
	m := &membership{client: c, topics: make(map[string]struct{})}
	r.conns[c.id] = m
	for _, topic := range c.identity.Topics() {
		r.addLocked(m, topic)
	}
	return nil
}

// Join adds an ad-hoc room. Authorization is the caller's job.
func (r *Registry) Join(c *Client, topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.conns[c.id]
	if !ok {
		return ErrNotRegistered
	}
	r.addLocked(m, topic)
	return nil
}

func (r *Registry) Leave(c *Client, topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.conns[c.id]
	if !ok {
		return
	}
	r.removeLocked(m, topic)
}

// Unregister drops the connection and every membership it held.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.conns[c.id]
	if !ok {
		return
	}
	for topic := range m.topics {
		r.removeLocked(m, topic)
	}
	delete(r.conns, c.id)
}

// Subscribers returns a snapshot; callers may use it after the lock is released.
func (r *Registry) Subscribers(topic string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.topics[topic]
	out := make([]*Client, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	return out
}

func (r *Registry) Topics(c *Client) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.conns[c.id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m.topics))
	for topic := range m.topics {
		out = append(out, topic)
	}
	slices.Sort(out)
	return out
}

func (r *Registry) Clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, 0, len(r.conns))
	for _, m := range r.conns {
		out = append(out, m.client)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *Registry) addLocked(m *membership, topic string) {
	m.topics[topic] = struct{}{}
	set, ok := r.topics[topic]
	if !ok {
		set = make(map[string]*Client)
		r.topics[topic] = set
	}
	set[m.client.id] = m.client
}

func (r *Registry) removeLocked(m *membership, topic string) {
	delete(m.topics, topic)
	set, ok := r.topics[topic]
	if !ok {
		return
	}
	delete(set, m.client.id)
	if len(set) == 0 {
		delete(r.topics, topic)
	}
}
