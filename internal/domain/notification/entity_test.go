//go:build unit

package notification_test

import (
	"testing"
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/notification"
	"campus-placement/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEvent(t *testing.T) {
	outboxID := uuid.New()
	e := event.Envelope{
		Version:       event.PayloadVersion,
		Type:          event.TypeOfferCreated,
		OpportunityID: uuid.New(),
		CandidateID:   uuid.New(),
		Display:       event.Display{OpportunityTitle: "QA Engineer", StartDate: "2026-08-01"},
	}
	r := event.Recipient{ID: e.CandidateID, Role: user.RoleStudent}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	n, err := notification.FromEvent(outboxID, e, r, now)
	require.NoError(t, err)
	assert.Equal(t, notification.IDFor(outboxID, r.ID), n.ID)
	assert.Equal(t, "Offer received", n.Title)
	assert.Equal(t, "You have received an offer for QA Engineer starting 2026-08-01.", n.Message)
	assert.Equal(t, event.CategoryOffer, n.Category)
	require.NotNil(t, n.RelatedOpportunityID)
	assert.Equal(t, e.OpportunityID, *n.RelatedOpportunityID)
	assert.False(t, n.IsRead)

	again, err := notification.FromEvent(outboxID, e, r, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, n.ID, again.ID)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, notification.ClampLimit(0))
	assert.Equal(t, 50, notification.ClampLimit(-3))
	assert.Equal(t, 10, notification.ClampLimit(10))
	assert.Equal(t, 200, notification.ClampLimit(1000))
}
