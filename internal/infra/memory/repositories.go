package memory

import (
	"context"
	"slices"
	"time"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/infra"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
)

type applicationRepo struct{ t *tx }

func (r applicationRepo) Create(_ context.Context, app application.Application) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	s := r.t.store
	s.mu.RLock()
	_, dup := s.pairs[pairKey{candidateID: app.CandidateID, opportunityID: app.OpportunityID}]
	s.mu.RUnlock()
	if dup {
		return infra.WrapRepoErr("application already exists for candidate and opportunity", nil, infra.KindDuplicateKey)
	}
	r.t.apps[app.ID] = app
	r.t.createdApps = append(r.t.createdApps, app.ID)
	return nil
}

func (r applicationRepo) Get(_ context.Context, id uuid.UUID) (application.Application, error) {
	if app, ok := r.t.apps[id]; ok {
		return app, nil
	}
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[id]
	if !ok {
		return application.Application{}, infra.WrapRepoErr("application not found", nil, infra.KindNotFound)
	}
	return app, nil
}

func (r applicationRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (application.Application, error) {
	if err := r.t.writable(); err != nil {
		return application.Application{}, err
	}
	if err := r.t.lockRow(ctx, id); err != nil {
		return application.Application{}, err
	}
	return r.Get(ctx, id)
}

func (r applicationRepo) Update(_ context.Context, app application.Application) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.apps[app.ID] = app
	return nil
}

func (r applicationRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []application.Application
	for _, app := range s.applications {
		if app.CandidateID == candidateID {
			out = append(out, app)
		}
	}
	slices.SortFunc(out, func(a, b application.Application) int { return b.AppliedAt.Compare(a.AppliedAt) })
	return out, nil
}

type roundRepo struct{ t *tx }

func (r roundRepo) Upsert(_ context.Context, rec application.RoundRecord) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.rounds[roundKey{applicationID: rec.ApplicationID, roundNumber: rec.RoundNumber}] = rec
	return nil
}

func (r roundRepo) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]application.RoundRecord, error) {
	merged := make(map[int]application.RoundRecord)
	s := r.t.store
	s.mu.RLock()
	for k, rec := range s.rounds {
		if k.applicationID == applicationID {
			merged[k.roundNumber] = rec
		}
	}
	s.mu.RUnlock()
	for k, rec := range r.t.rounds {
		if k.applicationID == applicationID {
			merged[k.roundNumber] = rec
		}
	}
	out := make([]application.RoundRecord, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b application.RoundRecord) int { return a.RoundNumber - b.RoundNumber })
	return out, nil
}

type offerRepo struct{ t *tx }

func (r offerRepo) Upsert(_ context.Context, o offer.Offer) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	s := r.t.store
	s.mu.RLock()
	existingID, exists := s.offerByApp[o.ApplicationID]
	s.mu.RUnlock()
	if exists && existingID != o.ID {
		// keep the original identity, as ON CONFLICT (application_id) would
		o.ID = existingID
	}
	r.t.offers[o.ID] = o
	return nil
}

func (r offerRepo) Get(_ context.Context, id uuid.UUID) (offer.Offer, error) {
	if o, ok := r.t.offers[id]; ok {
		return o, nil
	}
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.offers[id]
	if !ok {
		return offer.Offer{}, infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r offerRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	if err := r.t.writable(); err != nil {
		return offer.Offer{}, err
	}
	if err := r.t.lockRow(ctx, id); err != nil {
		return offer.Offer{}, err
	}
	return r.Get(ctx, id)
}

func (r offerRepo) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*offer.Offer, error) {
	for _, o := range r.t.offers {
		if o.ApplicationID == applicationID {
			found := o
			return &found, nil
		}
	}
	s := r.t.store
	s.mu.RLock()
	id, ok := s.offerByApp[applicationID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	o, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type outboxRepo struct{ t *tx }

func (r outboxRepo) Append(_ context.Context, e shared.OutboxEntry) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.outbox = append(r.t.outbox, e)
	return nil
}

func (r outboxRepo) Get(_ context.Context, id uuid.UUID) (shared.OutboxEntry, error) {
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.outbox[id]
	if !ok {
		return shared.OutboxEntry{}, infra.WrapRepoErr("outbox entry not found", nil, infra.KindNotFound)
	}
	return e, nil
}

func (r outboxRepo) PendingHeads(_ context.Context, limit int, exclude []uuid.UUID) ([]shared.OutboxEntry, error) {
	s := r.t.store
	s.mu.RLock()
	heads := make(map[uuid.UUID]shared.OutboxEntry)
	for _, e := range s.outbox {
		if e.PublishedAt != nil || slices.Contains(exclude, e.AggregateID) {
			continue
		}
		if cur, ok := heads[e.AggregateID]; !ok || e.Seq < cur.Seq {
			heads[e.AggregateID] = e
		}
	}
	s.mu.RUnlock()

	out := make([]shared.OutboxEntry, 0, len(heads))
	for _, e := range heads {
		out = append(out, e)
	}
	sortBySeq(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r outboxRepo) ClaimHead(_ context.Context, id uuid.UUID) (shared.OutboxEntry, bool, error) {
	if err := r.t.writable(); err != nil {
		return shared.OutboxEntry{}, false, err
	}
	if !r.t.tryLockRow(id) {
		return shared.OutboxEntry{}, false, nil
	}
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.outbox[id]
	if !ok || e.PublishedAt != nil {
		r.t.unlockRow(id)
		return shared.OutboxEntry{}, false, nil
	}
	for _, other := range s.outbox {
		if other.AggregateID == e.AggregateID && other.PublishedAt == nil && other.Seq < e.Seq {
			r.t.unlockRow(id)
			return shared.OutboxEntry{}, false, nil
		}
	}
	return e, true, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	p := r.t.outboxPatches[id]
	p.publishedAt = &at
	r.t.outboxPatches[id] = p
	return nil
}

func (r outboxRepo) RecordFailure(_ context.Context, id uuid.UUID, lastError string) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	p := r.t.outboxPatches[id]
	p.failure = &lastError
	r.t.outboxPatches[id] = p
	return nil
}

func (r outboxRepo) CountPending(_ context.Context) (int, error) {
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.outbox {
		if e.PublishedAt == nil {
			n++
		}
	}
	return n, nil
}

type notificationRepo struct{ t *tx }

func (r notificationRepo) InsertIfAbsent(_ context.Context, n notification.Notification) (bool, error) {
	if err := r.t.writable(); err != nil {
		return false, err
	}
	key := notificationKey{outboxID: n.OutboxID, recipientID: n.RecipientID}
	s := r.t.store
	s.mu.RLock()
	_, exists := s.notifKeys[key]
	s.mu.RUnlock()
	if exists {
		return false, nil
	}
	for _, pending := range r.t.notifications {
		if pending.OutboxID == n.OutboxID && pending.RecipientID == n.RecipientID {
			return false, nil
		}
	}
	r.t.notifications = append(r.t.notifications, n)
	return true, nil
}

func (r notificationRepo) ListByRecipient(_ context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error) {
	s := r.t.store
	s.mu.RLock()
	var out []notification.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	s.mu.RUnlock()
	sortNotifications(out)
	limit = notification.ClampLimit(limit)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r notificationRepo) MarkRead(_ context.Context, id, recipientID uuid.UUID, at time.Time) (bool, error) {
	if err := r.t.writable(); err != nil {
		return false, err
	}
	s := r.t.store
	s.mu.RLock()
	n, ok := s.notifications[id]
	s.mu.RUnlock()
	if !ok || n.RecipientID != recipientID {
		return false, nil
	}
	r.t.reads[id] = at
	return true, nil
}

func (r notificationRepo) CountUnread(_ context.Context, recipientID uuid.UUID) (int, error) {
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type commandReads struct{ t *tx }

func (r commandReads) OpportunityByID(_ context.Context, id uuid.UUID) (opportunity.Opportunity, error) {
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.opportunities[id]
	if !ok {
		return opportunity.Opportunity{}, infra.WrapRepoErr("opportunity not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r commandReads) CandidateByID(_ context.Context, id uuid.UUID) (opportunity.CandidateProfile, error) {
	s := r.t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.candidates[id]
	if !ok {
		return opportunity.CandidateProfile{}, infra.WrapRepoErr("candidate profile not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func sortBySeq(entries []shared.OutboxEntry) {
	slices.SortFunc(entries, func(a, b shared.OutboxEntry) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})
}

// newest first, id as a tiebreaker for a stable feed
func sortNotifications(ns []notification.Notification) {
	slices.SortFunc(ns, func(a, b notification.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareUUID(a.ID, b.ID)
	})
}

func compareUUID(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
