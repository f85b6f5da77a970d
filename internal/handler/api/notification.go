package api

import (
	"errors"
	"net/http"

	reqdto "campus-placement/internal/handler/dto/request"
	resdto "campus-placement/internal/handler/dto/response"
	"campus-placement/internal/handler/httperr"
	"campus-placement/internal/handler/middleware"
	"campus-placement/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNotificationNotFound = errors.New("notification not found")

// NotificationHandler serves the caller's inbox. Company and admin users share
// their organization's inbox.
type NotificationHandler struct {
	q queries.NotificationQueries
}

func NewNotificationHandler(q queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{q: q}
}

// @Summary List notifications
// @Description Newest first. limit defaults to 50 and is clamped to 200.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.NotificationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var query reqdto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
		return
	}
	list, err := h.q.ListNotifications(c.Request.Context(), identity.InboxID(), query.Limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotifications(list))
}

// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UnreadCountResponse
// @Failure 401 {object} httperr.Response
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	n, err := h.q.UnreadCount(c.Request.Context(), identity.InboxID())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.UnreadCountResponse{Unread: n})
}

// @Summary Mark notification read
// @Description Idempotent. Notifications owned by someone else are reported as not found.
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification id", nil)
		return
	}
	found, err := h.q.MarkNotificationRead(c.Request.Context(), id, identity.InboxID())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !found {
		httperr.AbortWithError(c, http.StatusNotFound, errNotificationNotFound, "Not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
