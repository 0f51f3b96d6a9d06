package handler

import (
	"errors"
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
)

// ConsultationHandler handles consultation request endpoints
type ConsultationHandler struct {
	consultationService *service.ConsultationService
}

func NewConsultationHandler(consultationService *service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

// Create godoc
// @Summary Request a consultation from colleagues on a patient case
// @Tags Consultations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateConsultationRequest true "Consultation request"
// @Success 201 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /consultations [post]
func (h *ConsultationHandler) Create(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	var req model.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	consultation, err := h.consultationService.Create(c.Request.Context(), doctorID, req)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, model.Fail("Patient not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to create consultation"))
		return
	}

	c.JSON(http.StatusCreated, model.OK(consultation))
}
