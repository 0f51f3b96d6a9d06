package handler

import (
	"errors"
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles the in-app notification endpoints
type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List godoc
// @Summary List the authenticated doctor's notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} model.Envelope
// @Failure 401 {object} model.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	var req model.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	resp, err := h.notifications.List(doctorID, req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to list notifications"))
		return
	}

	c.JSON(http.StatusOK, model.OK(resp))
}

// UnreadCount godoc
// @Summary Count the authenticated doctor's unread notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Envelope
// @Failure 401 {object} model.Envelope
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	count, err := h.notifications.UnreadCount(doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to count notifications"))
		return
	}

	c.JSON(http.StatusOK, model.OK(model.UnreadCountResponse{UnreadCount: count}))
}

// MarkRead godoc
// @Summary Mark one notification as read (idempotent)
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Fail("Invalid notification ID"))
		return
	}

	if err := h.notifications.MarkRead(id, doctorID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, model.Fail("Notification not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to mark notification as read"))
		return
	}

	c.JSON(http.StatusOK, model.OKMessage("Notification marked as read"))
}

// MarkAllRead godoc
// @Summary Mark all of the authenticated doctor's notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Envelope
// @Failure 401 {object} model.Envelope
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	if err := h.notifications.MarkAllRead(doctorID); err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to mark notifications as read"))
		return
	}

	c.JSON(http.StatusOK, model.OKMessage("All notifications marked as read"))
}
