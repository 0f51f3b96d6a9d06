package handler

import (
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
)

// PatientHandler handles patient case endpoints
type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create godoc
// @Summary Submit a new patient case
// @Description Creates the case with its initial section statuses and notifies all verified doctors.
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreatePatientRequest true "Patient case"
// @Success 201 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Router /patients [post]
func (h *PatientHandler) Create(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), doctorID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to create patient"))
		return
	}

	c.JSON(http.StatusCreated, model.OK(patient))
}
