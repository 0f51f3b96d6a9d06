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

// SyndicateHandler handles syndicate card review endpoints
type SyndicateHandler struct {
	syndicateService *service.SyndicateService
}

func NewSyndicateHandler(syndicateService *service.SyndicateService) *SyndicateHandler {
	return &SyndicateHandler{syndicateService: syndicateService}
}

// Decide godoc
// @Summary Approve or reject a doctor's syndicate card (admin only)
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID"
// @Param body body model.SyndicateDecisionRequest true "Decision"
// @Success 200 {object} model.Envelope
// @Failure 403 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /doctors/{id}/syndicate-card [put]
func (h *SyndicateHandler) Decide(c *gin.Context) {
	adminID := middleware.GetDoctorID(c)

	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Fail("Invalid doctor ID"))
		return
	}

	var req model.SyndicateDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	if err := h.syndicateService.Decide(c.Request.Context(), adminID, doctorID, req.Decision); err != nil {
		if errors.Is(err, service.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, model.Fail("Doctor not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to record decision"))
		return
	}

	c.JSON(http.StatusOK, model.OKMessage("Decision recorded"))
}
