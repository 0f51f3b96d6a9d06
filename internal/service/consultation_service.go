package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

// ConsultationService handles consultation requests between doctors
type ConsultationService struct {
	consultRepo   *repository.ConsultationRepository
	patientRepo   *repository.PatientRepository
	doctorRepo    *repository.DoctorRepository
	notifications *NotificationService
}

func NewConsultationService(
	consultRepo *repository.ConsultationRepository,
	patientRepo *repository.PatientRepository,
	doctorRepo *repository.DoctorRepository,
	notifications *NotificationService,
) *ConsultationService {
	return &ConsultationService{
		consultRepo:   consultRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		notifications: notifications,
	}
}

// Create opens a consultation on a patient case and notifies the consulted
// doctors
func (s *ConsultationService) Create(ctx context.Context, doctorID uuid.UUID, req model.CreateConsultationRequest) (*model.Consultation, error) {
	patient, err := s.patientRepo.FindByID(req.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	consultation := &model.Consultation{
		PatientID: patient.ID,
		DoctorID:  doctorID,
		Note:      req.Note,
	}
	for _, id := range req.DoctorIDs {
		if id == doctorID {
			continue
		}
		consultation.Members = append(consultation.Members, model.ConsultationMember{DoctorID: id})
	}
	if err := s.consultRepo.Create(consultation); err != nil {
		return nil, err
	}

	actorName := "A colleague"
	if actor, err := s.doctorRepo.FindByID(doctorID); err == nil {
		actorName = "Dr. " + actor.Name
	}

	event := Event{
		Type:         model.NotificationConsultation,
		ActorID:      doctorID,
		SubjectID:    &consultation.ID,
		RecipientIDs: req.DoctorIDs,
		Title:        "Consultation request",
		Content:      fmt.Sprintf("%s requested your consultation on patient %s", actorName, patient.Name),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch consultation notifications: %v", err)
	}

	return consultation, nil
}
