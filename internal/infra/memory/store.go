package memory

import (
	"context"
	"sync"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
)

type pairKey struct {
	candidateID   uuid.UUID
	opportunityID uuid.UUID
}

type roundKey struct {
	applicationID uuid.UUID
	roundNumber   int
}

type notificationKey struct {
	outboxID    uuid.UUID
	recipientID uuid.UUID
}

// Store is an in-process Entity Store with the same contract as the Postgres
// one: row locks per aggregate, writes visible only after commit, unique
// constraints checked atomically at commit.
type Store struct {
	mu sync.RWMutex

	applications  map[uuid.UUID]application.Application
	pairs         map[pairKey]uuid.UUID
	rounds        map[roundKey]application.RoundRecord
	offers        map[uuid.UUID]offer.Offer
	offerByApp    map[uuid.UUID]uuid.UUID
	outbox        map[uuid.UUID]shared.OutboxEntry
	outboxSeq     int64
	notifications map[uuid.UUID]notification.Notification
	notifKeys     map[notificationKey]uuid.UUID

	opportunities map[uuid.UUID]opportunity.Opportunity
	candidates    map[uuid.UUID]opportunity.CandidateProfile

	locks *lockTable
}

func NewStore() *Store {
	return &Store{
		applications:  make(map[uuid.UUID]application.Application),
		pairs:         make(map[pairKey]uuid.UUID),
		rounds:        make(map[roundKey]application.RoundRecord),
		offers:        make(map[uuid.UUID]offer.Offer),
		offerByApp:    make(map[uuid.UUID]uuid.UUID),
		outbox:        make(map[uuid.UUID]shared.OutboxEntry),
		notifications: make(map[uuid.UUID]notification.Notification),
		notifKeys:     make(map[notificationKey]uuid.UUID),
		opportunities: make(map[uuid.UUID]opportunity.Opportunity),
		candidates:    make(map[uuid.UUID]opportunity.CandidateProfile),
		locks:         newLockTable(),
	}
}

// PutOpportunity seeds data owned by the posting service.
func (s *Store) PutOpportunity(o opportunity.Opportunity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opportunities[o.ID] = o
}

// PutCandidate seeds data owned by the profile service.
func (s *Store) PutCandidate(p opportunity.CandidateProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[p.CandidateID] = p
}

// OutboxEntries returns every entry in commit order. Intended for tests and diagnostics.
func (s *Store) OutboxEntries() []shared.OutboxEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.OutboxEntry, 0, len(s.outbox))
	for _, e := range s.outbox {
		out = append(out, e)
	}
	sortBySeq(out)
	return out
}

// Notifications returns every notification for recipientID regardless of page size.
func (s *Store) Notifications(recipientID uuid.UUID) []notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []notification.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sortNotifications(out)
	return out
}

func (s *Store) ApplicationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.applications)
}

// lockTable hands out one context-aware mutex per row id. A slot lives only
// while someone holds or waits for it.
type lockTable struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[uuid.UUID]*lockSlot)}
}

func (t *lockTable) acquire(id uuid.UUID) *lockSlot {
	t.mu.Lock()
	defer t.mu.Unlock()
	sl, ok := t.locks[id]
	if !ok {
		sl = &lockSlot{ch: make(chan struct{}, 1)}
		t.locks[id] = sl
	}
	sl.refs++
	return sl
}

func (t *lockTable) release(id uuid.UUID, sl *lockSlot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sl.refs--
	if sl.refs == 0 {
		delete(t.locks, id)
	}
}

func (t *lockTable) lock(ctx context.Context, id uuid.UUID) error {
	sl := t.acquire(id)
	select {
	case sl.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		t.release(id, sl)
		return ctx.Err()
	}
}

func (t *lockTable) tryLock(id uuid.UUID) bool {
	sl := t.acquire(id)
	select {
	case sl.ch <- struct{}{}:
		return true
	default:
		t.release(id, sl)
		return false
	}
}

func (t *lockTable) unlock(id uuid.UUID) {
	t.mu.Lock()
	sl, ok := t.locks[id]
	t.mu.Unlock()
	if !ok {
		return
	}
	<-sl.ch
	t.release(id, sl)
}

func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}
