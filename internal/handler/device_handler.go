package handler

import (
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
)

// DeviceHandler handles device push-token registration
type DeviceHandler struct {
	notifications *service.NotificationService
}

func NewDeviceHandler(notifications *service.NotificationService) *DeviceHandler {
	return &DeviceHandler{notifications: notifications}
}

// Register godoc
// @Summary Register a device push token for the authenticated doctor
// @Description Re-registering an existing token moves its ownership to the caller.
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.RegisterDeviceRequest true "Device registration"
// @Success 201 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Router /devices [post]
func (h *DeviceHandler) Register(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	var req model.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	if err := h.notifications.RegisterDevice(doctorID, req.Token, req.Platform); err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to register device"))
		return
	}

	c.JSON(http.StatusCreated, model.OKMessage("Device registered"))
}

// List godoc
// @Summary List the authenticated doctor's registered devices
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Envelope
// @Failure 401 {object} model.Envelope
// @Router /devices [get]
func (h *DeviceHandler) List(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	devices, err := h.notifications.Devices(doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to list devices"))
		return
	}

	c.JSON(http.StatusOK, model.OK(devices))
}
