//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"
	resdto "campus-placement/internal/handler/dto/response"
	"campus-placement/internal/realtime"
	"campus-placement/internal/testutil/builder"
	"campus-placement/internal/testutil/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type PlacementSuite struct {
	SharedSuite
}

func TestPlacementPostgres(t *testing.T) {
	suite.Run(t, new(PlacementSuite))
}

func TestPlacementMemory(t *testing.T) {
	suite.Run(t, &PlacementSuite{SharedSuite: SharedSuite{memory: true}})
}

type fixture struct {
	opp       opportunity.Opportunity
	profile   opportunity.CandidateProfile
	candidate user.Identity
	recruiter user.Identity
}

func (s *PlacementSuite) newFixture(rounds int) fixture {
	orgID := uuid.New()
	opp := builder.NewOpportunityBuilder().WithOrganization(orgID).WithRounds(rounds).Build()
	profile := builder.NewCandidateBuilder().Build()
	s.Seed.Opportunity(s.T(), opp)
	s.Seed.Candidate(s.T(), profile)
	return fixture{
		opp:       opp,
		profile:   profile,
		candidate: builder.Student(s.T(), profile.CandidateID),
		recruiter: builder.Recruiter(s.T(), orgID),
	}
}

func (s *PlacementSuite) token(id user.Identity) string {
	return s.JWT.GenerateToken(s.T(), id)
}

func (s *PlacementSuite) apply(f fixture) resdto.ApplicationResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		"/api/opportunities/"+f.opp.ID.String()+"/applications", nil, s.token(f.candidate))
	var app resdto.ApplicationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &app)
	return app
}

func (s *PlacementSuite) recordRound(f fixture, appID uuid.UUID, round int, outcome string) resdto.RoundOutcomeResponse {
	rec := s.putRound(f, appID, round, outcome)
	var res resdto.RoundOutcomeResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	return res
}

func (s *PlacementSuite) putRound(f fixture, appID uuid.UUID, round int, outcome string) *nethttptest.ResponseRecorder {
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
		fmt.Sprintf("/api/applications/%s/rounds/%d", appID, round),
		map[string]any{"outcome": outcome, "feedback": "round " + fmt.Sprint(round)}, s.token(f.recruiter))
}

func (s *PlacementSuite) notifications(id user.Identity) []resdto.NotificationResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/notifications", nil, s.token(id))
	var list []resdto.NotificationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
	return list
}

func (s *PlacementSuite) eventuallyNotifications(id user.Identity, n int) []resdto.NotificationResponse {
	var list []resdto.NotificationResponse
	s.Require().Eventually(func() bool {
		list = s.notifications(id)
		return len(list) == n
	}, 5*time.Second, 20*time.Millisecond, "expected %d notifications", n)
	return list
}

func (s *PlacementSuite) TestThreeRoundHappyPath() {
	f := s.newFixture(3)
	candidateSock := s.connect(f.candidate)
	orgSock := s.connect(f.recruiter)

	app := s.apply(f)
	s.Equal("APPLIED", app.OverallStatus)

	submitted := candidateSock.nextEvent()
	s.Equal(event.TypeApplicationSubmitted, submitted.Type)
	s.Equal(user.UserTopic(f.candidate.UserID), submitted.Topic)
	s.Equal(app.ID, submitted.ApplicationID)

	orgSubmitted := orgSock.nextEvent()
	s.Equal(event.TypeApplicationSubmitted, orgSubmitted.Type)
	s.Equal(user.OrganizationTopic(f.opp.OrganizationID), orgSubmitted.Topic)
	s.Equal(submitted.EventID, orgSubmitted.EventID)

	for round := 1; round <= 3; round++ {
		res := s.recordRound(f, app.ID, round, "selected")
		s.Equal(round, res.Application.CurrentRoundNumber)

		msg := candidateSock.nextEvent()
		s.Equal(event.TypeRoundOutcome, msg.Type)
		s.Equal(res.EventID, msg.EventID)
		s.Equal(round, msg.Data.RoundNumber)
		s.Equal("SELECTED", msg.Data.Outcome)
	}

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/applications/"+app.ID.String()+"/offer",
		map[string]any{"compensation": 1250000, "proposed_start_date": "2026-07-01"}, s.token(f.recruiter))
	var created resdto.OfferResultResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	s.Equal("SELECTED", created.Application.OverallStatus)
	s.Equal("2026-07-01", created.Offer.ProposedStartDate)

	offerMsg := candidateSock.nextEvent()
	s.Equal(event.TypeOfferCreated, offerMsg.Type)
	s.Equal(created.EventID, offerMsg.EventID)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/offers/"+created.Offer.ID.String()+"/response",
		map[string]any{"decision": "accept"}, s.token(f.candidate))
	var resolved resdto.OfferResultResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resolved)
	s.Equal("OFFER_ACCEPTED", resolved.Application.OverallStatus)
	s.Equal("ACCEPTED", resolved.Offer.Status)

	orgResolved := orgSock.nextEvent()
	s.Equal(event.TypeOfferResolved, orgResolved.Type)
	s.Equal(resolved.EventID, orgResolved.EventID)

	// a second response is rejected and emits nothing
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/offers/"+created.Offer.ID.String()+"/response",
		map[string]any{"decision": "decline"}, s.token(f.candidate))
	httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already been responded to")

	candidateInbox := s.eventuallyNotifications(f.candidate, 5)
	for _, n := range candidateInbox {
		s.False(n.IsRead)
		s.Require().NotNil(n.RelatedOpportunityID)
		s.Equal(f.opp.ID, *n.RelatedOpportunityID)
	}
	s.eventuallyNotifications(f.recruiter, 2)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/applications/"+app.ID.String(), nil, s.token(f.candidate))
	var detail resdto.ApplicationDetailResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &detail)
	s.Len(detail.Rounds, 3)
	s.Require().NotNil(detail.Offer)
	s.Equal("ACCEPTED", detail.Offer.Status)

	candidateSock.expectSilence(200 * time.Millisecond)
}

func (s *PlacementSuite) TestRejectionAtRoundTwo() {
	f := s.newFixture(3)
	candidateSock := s.connect(f.candidate)

	app := s.apply(f)
	s.Equal(event.TypeApplicationSubmitted, candidateSock.nextEvent().Type)

	s.recordRound(f, app.ID, 1, "SELECTED")
	s.Equal(event.TypeRoundOutcome, candidateSock.nextEvent().Type)

	res := s.recordRound(f, app.ID, 2, "REJECTED")
	s.Equal("REJECTED", res.Application.OverallStatus)
	rejected := candidateSock.nextEvent()
	s.Equal("REJECTED", rejected.Data.Outcome)
	s.Equal("REJECTED", rejected.Data.OverallStatus)

	rec := s.putRound(f, app.ID, 3, "SELECTED")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "REJECTED")

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/applications/"+app.ID.String()+"/offer",
		map[string]any{"compensation": 900000, "proposed_start_date": "2026-07-01"}, s.token(f.recruiter))
	s.Equal(http.StatusConflict, rec.Code, rec.Body.String())

	s.eventuallyNotifications(f.candidate, 3)
	s.eventuallyNotifications(f.recruiter, 1)
	candidateSock.expectSilence(200 * time.Millisecond)
}

func (s *PlacementSuite) TestConcurrentApplyCreatesOneApplication() {
	f := s.newFixture(2)
	token := s.token(f.candidate)
	url := s.Server.URL + "/api/opportunities/" + f.opp.ID.String() + "/applications"

	const attempts = 8
	statuses := make([]int, attempts)
	var g errgroup.Group
	for i := range attempts {
		g.Go(func() error {
			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(nil))
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	created, conflicts := 0, 0
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	s.Equal(1, created)
	s.Equal(attempts-1, conflicts)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/applications", nil, token)
	var mine []resdto.ApplicationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &mine)
	s.Len(mine, 1)

	// one submission event, not one per attempt
	s.eventuallyNotifications(f.recruiter, 1)
}

func (s *PlacementSuite) TestIneligibleCandidateIsRejected() {
	f := s.newFixture(2)
	weak := builder.NewCandidateBuilder().WithScore(5).Build()
	s.Seed.Candidate(s.T(), weak)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		"/api/opportunities/"+f.opp.ID.String()+"/applications", nil, s.token(builder.Student(s.T(), weak.CandidateID)))
	httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, opportunity.ReasonMinimumScore)
}

func (s *PlacementSuite) TestLateSubscriberOnlyHasDurableRecords() {
	f := s.newFixture(2)
	s.apply(f)
	list := s.eventuallyNotifications(f.candidate, 1)

	late := s.connect(f.candidate)
	late.expectSilence(300 * time.Millisecond)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/notifications/"+list[0].ID.String()+"/read", nil, s.token(f.candidate))
	s.Equal(http.StatusNoContent, rec.Code)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/notifications/unread-count", nil, s.token(f.candidate))
	var unread resdto.UnreadCountResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &unread)
	s.Equal(0, unread.Unread)
}

func (s *PlacementSuite) TestApplicationRoom() {
	f := s.newFixture(2)
	dashboard := s.connect(f.recruiter)
	app := s.apply(f)
	s.Equal(event.TypeApplicationSubmitted, dashboard.nextEvent().Type)
	dashboard.join(event.ApplicationRoom(app.ID))

	outsider := s.connect(builder.Recruiter(s.T(), uuid.New()))
	outsider.send(realtime.FrameJoin, "join", realtime.RoomPayload{Topic: event.ApplicationRoom(app.ID)})
	denied := outsider.read()
	s.Equal(realtime.FrameError, denied.Type)
	var payload realtime.ErrorPayload
	s.Require().NoError(json.Unmarshal(denied.Payload, &payload))
	s.Equal(realtime.CodeNotFound, payload.Code)

	res := s.recordRound(f, app.ID, 1, "SELECTED")
	summary := dashboard.nextEvent()
	s.Equal(event.ApplicationRoom(app.ID), summary.Topic)
	s.Equal(res.EventID, summary.EventID)

	outsider.expectSilence(200 * time.Millisecond)
}
