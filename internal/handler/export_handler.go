package handler

import (
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
)

// ExportHandler handles export job endpoints
type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// EnqueueNotificationExport godoc
// @Summary Queue an export of the caller's notification history
// @Description Returns a job ID. Poll GET /exports/{id} for progress and the download URL.
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 202 {object} model.Envelope
// @Router /exports/notifications [post]
func (h *ExportHandler) EnqueueNotificationExport(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	jobID, err := h.exportService.EnqueueNotificationExport(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to queue export"))
		return
	}

	c.JSON(http.StatusAccepted, model.OK(model.ExportQueuedResponse{JobID: jobID}))
}

// Progress godoc
// @Summary Poll the progress of an export job
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Progress(c *gin.Context) {
	progress, err := h.exportService.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to read export progress"))
		return
	}
	if progress == nil {
		c.JSON(http.StatusNotFound, model.Fail("Export job not found"))
		return
	}

	c.JSON(http.StatusOK, model.OK(progress))
}
