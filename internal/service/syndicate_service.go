package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// SyndicateService handles admin decisions on doctors' syndicate cards
type SyndicateService struct {
	doctorRepo    *repository.DoctorRepository
	notifications *NotificationService
}

func NewSyndicateService(doctorRepo *repository.DoctorRepository, notifications *NotificationService) *SyndicateService {
	return &SyndicateService{
		doctorRepo:    doctorRepo,
		notifications: notifications,
	}
}

// Decide records the admin's approval or rejection of a doctor's syndicate
// card and notifies that doctor. Approval also verifies the account.
func (s *SyndicateService) Decide(ctx context.Context, adminID, doctorID uuid.UUID, decision model.SyndicateCardStatus) error {
	matched, err := s.doctorRepo.SetSyndicateDecision(doctorID, decision)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrDoctorNotFound
	}

	event := Event{
		Type:           model.NotificationSyndicateCard,
		ActorID:        adminID,
		SubjectID:      &doctorID,
		TargetDoctorID: &doctorID,
		Title:          "Syndicate card decision",
		Content:        fmt.Sprintf("Your syndicate card has been %s", decision),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch syndicate-card notification: %v", err)
	}

	return nil
}

// IsAdmin reports whether the given doctor has the admin role
func (s *SyndicateService) IsAdmin(doctorID uuid.UUID) bool {
	doctor, err := s.doctorRepo.FindByID(doctorID)
	if err != nil {
		return false
	}
	return doctor.IsAdmin
}
