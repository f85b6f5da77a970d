package memory

import (
	"context"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/infra"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in read-only transaction")

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.run(ctx, false, fn)
}

func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.run(ctx, true, fn)
}

func (u *UnitOfWork) run(ctx context.Context, readOnly bool, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	t := newTx(u.store, readOnly)
	defer t.release()

	if err = fn(ctx, t); err != nil {
		return err
	}
	if readOnly {
		return nil
	}
	return t.commit()
}

type outboxPatch struct {
	publishedAt *time.Time
	failure     *string
}

// tx buffers writes and applies them atomically on commit. Reads see the
// transaction's own writes first, then committed state.
type tx struct {
	store    *Store
	readOnly bool
	held     map[uuid.UUID]struct{}

	createdApps   []uuid.UUID
	apps          map[uuid.UUID]application.Application
	rounds        map[roundKey]application.RoundRecord
	offers        map[uuid.UUID]offer.Offer
	outbox        []shared.OutboxEntry
	outboxPatches map[uuid.UUID]outboxPatch
	notifications []notification.Notification
	reads         map[uuid.UUID]time.Time
}

func newTx(store *Store, readOnly bool) *tx {
	return &tx{
		store:         store,
		readOnly:      readOnly,
		held:          make(map[uuid.UUID]struct{}),
		apps:          make(map[uuid.UUID]application.Application),
		rounds:        make(map[roundKey]application.RoundRecord),
		offers:        make(map[uuid.UUID]offer.Offer),
		outboxPatches: make(map[uuid.UUID]outboxPatch),
		reads:         make(map[uuid.UUID]time.Time),
	}
}

func (t *tx) Applications() shared.ApplicationRepository   { return applicationRepo{t} }
func (t *tx) Rounds() shared.RoundRepository               { return roundRepo{t} }
func (t *tx) Offers() shared.OfferRepository               { return offerRepo{t} }
func (t *tx) Outbox() shared.OutboxRepository              { return outboxRepo{t} }
func (t *tx) Notifications() shared.NotificationRepository { return notificationRepo{t} }
func (t *tx) Reads() shared.CommandReads                   { return commandReads{t} }

func (t *tx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}

func (t *tx) lockRow(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.held[id]; ok {
		return nil
	}
	if err := t.store.locks.lock(ctx, id); err != nil {
		return infra.WrapRepoErr("row lock wait cancelled", err, infra.KindTransient)
	}
	t.held[id] = struct{}{}
	return nil
}

func (t *tx) tryLockRow(id uuid.UUID) bool {
	if _, ok := t.held[id]; ok {
		return true
	}
	if !t.store.locks.tryLock(id) {
		return false
	}
	t.held[id] = struct{}{}
	return true
}

func (t *tx) unlockRow(id uuid.UUID) {
	if _, ok := t.held[id]; !ok {
		return
	}
	delete(t.held, id)
	t.store.locks.unlock(id)
}

func (t *tx) release() {
	for id := range t.held {
		t.store.locks.unlock(id)
	}
	t.held = map[uuid.UUID]struct{}{}
}

func (t *tx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[pairKey]struct{}, len(t.createdApps))
	for _, id := range t.createdApps {
		app := t.apps[id]
		key := pairKey{candidateID: app.CandidateID, opportunityID: app.OpportunityID}
		if _, dup := s.pairs[key]; dup {
			return infra.WrapRepoErr("application already exists for candidate and opportunity", nil, infra.KindDuplicateKey)
		}
		if _, dup := seen[key]; dup {
			return infra.WrapRepoErr("application already exists for candidate and opportunity", nil, infra.KindDuplicateKey)
		}
		seen[key] = struct{}{}
	}

	for _, id := range t.createdApps {
		app := t.apps[id]
		s.pairs[pairKey{candidateID: app.CandidateID, opportunityID: app.OpportunityID}] = id
	}
	for id, app := range t.apps {
		s.applications[id] = app
	}
	for k, r := range t.rounds {
		s.rounds[k] = r
	}
	for id, o := range t.offers {
		s.offers[id] = o
		s.offerByApp[o.ApplicationID] = id
	}
	for _, e := range t.outbox {
		s.outboxSeq++
		e.Seq = s.outboxSeq
		s.outbox[e.ID] = e
	}
	for id, p := range t.outboxPatches {
		e, ok := s.outbox[id]
		if !ok {
			continue
		}
		if p.publishedAt != nil {
			at := *p.publishedAt
			e.PublishedAt = &at
		}
		if p.failure != nil {
			e.AttemptCount++
			e.LastError = *p.failure
		}
		s.outbox[id] = e
	}
	for _, n := range t.notifications {
		key := notificationKey{outboxID: n.OutboxID, recipientID: n.RecipientID}
		if _, exists := s.notifKeys[key]; exists {
			continue
		}
		s.notifKeys[key] = n.ID
		s.notifications[n.ID] = n
	}
	for id, at := range t.reads {
		n, ok := s.notifications[id]
		if !ok || n.IsRead {
			continue
		}
		readAt := at
		n.IsRead = true
		n.ReadAt = &readAt
		s.notifications[id] = n
	}
	return nil
}
