package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "campus-placement/internal/handler/dto/request"
	resdto "campus-placement/internal/handler/dto/response"
	"campus-placement/internal/handler/httperr"
	"campus-placement/internal/handler/middleware"
	"campus-placement/internal/usecase/commands"
	"campus-placement/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errors.New("no identity on request")

type ApplicationHandler struct {
	apps   commands.ApplicationCommands
	offers commands.OfferCommands
	q      queries.ApplicationQueries
}

func NewApplicationHandler(apps commands.ApplicationCommands, offers commands.OfferCommands, q queries.ApplicationQueries) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, offers: offers, q: q}
}

// @Summary Apply to an opportunity
// @Description Submit the calling candidate's application. Eligibility is checked against the candidate profile.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Opportunity ID"
// @Success 201 {object} resdto.ApplicationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/opportunities/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	opportunityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid opportunity id", nil)
		return
	}
	result, err := h.apps.Apply(c.Request.Context(), opportunityID, identity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromApplication(result.Application))
}

// @Summary Record a round outcome
// @Description Record or correct the outcome of one interview round. Only the owning organization may call this.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param round path int true "Round number (1-based)"
// @Param request body reqdto.RecordRoundRequest true "Round outcome"
// @Success 200 {object} resdto.RoundOutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/applications/{id}/rounds/{round} [put]
func (h *ApplicationHandler) RecordRound(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid application id", nil)
		return
	}
	roundNumber, err := strconv.Atoi(c.Param("round"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid round number", nil)
		return
	}
	var req reqdto.RecordRoundRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	result, err := h.apps.RecordRoundOutcome(c.Request.Context(), req.ToCommand(applicationID, roundNumber), identity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RoundOutcomeResponse{
		Application: resdto.FromApplication(result.Application),
		Round:       resdto.FromRound(result.Round),
		EventID:     result.EventID,
	})
}

// @Summary Issue or revise an offer
// @Description Issue an offer for an application that cleared every round. Re-issuing revises the pending offer in place.
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body reqdto.CreateOfferRequest true "Offer terms"
// @Success 201 {object} resdto.OfferResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/applications/{id}/offer [post]
func (h *ApplicationHandler) CreateOffer(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid application id", nil)
		return
	}
	var req reqdto.CreateOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(applicationID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.offers.CreateOffer(c.Request.Context(), cmd, identity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.OfferResultResponse{
		Offer:       resdto.FromOffer(result.Offer),
		Application: resdto.FromApplication(result.Application),
		EventID:     result.EventID,
	})
}

// @Summary Respond to an offer
// @Description Accept or decline a pending offer. Only the candidate it was issued to may respond, exactly once.
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.RespondToOfferRequest true "Decision"
// @Success 200 {object} resdto.OfferResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/offers/{id}/response [post]
func (h *ApplicationHandler) RespondToOffer(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer id", nil)
		return
	}
	var req reqdto.RespondToOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	decision, err := req.ToDomain()
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.offers.RespondToOffer(c.Request.Context(), offerID, decision, identity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OfferResultResponse{
		Offer:       resdto.FromOffer(result.Offer),
		Application: resdto.FromApplication(result.Application),
		EventID:     result.EventID,
	})
}

// @Summary Get application
// @Description Application with its rounds and offer, visible to the candidate and the owning organization
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} resdto.ApplicationDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid application id", nil)
		return
	}
	view, err := h.q.GetApplication(c.Request.Context(), id, identity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromApplicationView(view))
}

// @Summary List my applications
// @Description Applications submitted by the calling candidate, newest first
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ApplicationResponse
// @Failure 401 {object} httperr.Response
// @Router /api/applications [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	list, err := h.q.ListMyApplications(c.Request.Context(), identity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromApplications(list))
}
