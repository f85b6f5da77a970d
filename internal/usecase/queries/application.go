package queries

import (
	"context"

	"campus-placement/internal/domain/application"
	"campus-placement/internal/domain/offer"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/usecase/shared"

	"github.com/google/uuid"
)

// ApplicationView is the full aggregate as one consistent snapshot.
type ApplicationView struct {
	Application application.Application
	Opportunity opportunity.Opportunity
	Rounds      []application.RoundRecord
	Offer       *offer.Offer
}

//go:generate mockgen -destination=../../mocks/queries/mock_queries.go -package=queriesmock . ApplicationQueries,NotificationQueries

type ApplicationQueries interface {
	GetApplication(ctx context.Context, id uuid.UUID, viewer user.Identity) (*ApplicationView, error)
	ListMyApplications(ctx context.Context, candidate user.Identity) ([]application.Application, error)
	CanJoinApplicationRoom(ctx context.Context, viewer user.Identity, applicationID uuid.UUID) (bool, error)
}

type applicationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewApplicationQueries(uow shared.UnitOfWork) ApplicationQueries {
	return &applicationQueriesImpl{uow: uow}
}

// GetApplication hides applications the viewer may not see behind NotFound.
func (q *applicationQueriesImpl) GetApplication(ctx context.Context, id uuid.UUID, viewer user.Identity) (*ApplicationView, error) {
	var view ApplicationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		app, err := tx.Applications().Get(ctx, id)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return application.ErrNotFound
			}
			return err
		}
		opp, err := tx.Reads().OpportunityByID(ctx, app.OpportunityID)
		if err != nil {
			return err
		}
		if !canView(viewer, app, opp) {
			return application.ErrNotFound
		}

		rounds, err := tx.Rounds().ListByApplication(ctx, id)
		if err != nil {
			return err
		}
		o, err := tx.Offers().GetByApplication(ctx, id)
		if err != nil {
			return err
		}
		view = ApplicationView{Application: app, Opportunity: opp, Rounds: rounds, Offer: o}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *applicationQueriesImpl) ListMyApplications(ctx context.Context, candidate user.Identity) ([]application.Application, error) {
	if !candidate.IsCandidate() {
		return []application.Application{}, nil
	}
	var apps []application.Application
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		apps, err = tx.Applications().ListByCandidate(ctx, candidate.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []application.Application{}
	}
	return apps, nil
}

func canView(viewer user.Identity, app application.Application, opp opportunity.Opportunity) bool {
	if viewer.IsCandidate() {
		return viewer.UserID == app.CandidateID
	}
	return viewer.ActsFor(opp.OrganizationID)
}

// CanJoinApplicationRoom is the room authorizer for live application dashboards.
func (q *applicationQueriesImpl) CanJoinApplicationRoom(ctx context.Context, viewer user.Identity, applicationID uuid.UUID) (bool, error) {
	_, err := q.GetApplication(ctx, applicationID, viewer)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
