package service

import (
	"context"
	"fmt"
	"log"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
)

// PatientService handles patient case creation
type PatientService struct {
	patientRepo   *repository.PatientRepository
	doctorRepo    *repository.DoctorRepository
	notifications *NotificationService
}

func NewPatientService(
	patientRepo *repository.PatientRepository,
	doctorRepo *repository.DoctorRepository,
	notifications *NotificationService,
) *PatientService {
	return &PatientService{
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		notifications: notifications,
	}
}

// Create inserts a patient case with its initial section rows and notifies
// all verified doctors. The case is created even when notification dispatch
// fails: fan-out is a fail-soft side effect.
func (s *PatientService) Create(ctx context.Context, doctorID uuid.UUID, req model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		DoctorID: doctorID,
		Name:     req.Name,
		Hospital: req.Hospital,
	}
	if err := s.patientRepo.CreateWithSections(patient); err != nil {
		return nil, err
	}

	actorName := "A colleague"
	if actor, err := s.doctorRepo.FindByID(doctorID); err == nil {
		actorName = "Dr. " + actor.Name
	}

	event := Event{
		Type:      model.NotificationNewPatient,
		ActorID:   doctorID,
		SubjectID: &patient.ID,
		Title:     "New patient case",
		Content:   fmt.Sprintf("%s added a new patient case: %s", actorName, patient.Name),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch new-patient notifications: %v", err)
	}

	return patient, nil
}
