package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	pushTimeout    = 30 * time.Second
	pushRetryDelay = 2 * time.Second
)

// Pusher sends a batch push notification to device tokens
type Pusher interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// NotificationService resolves event recipients, persists one durable
// notification row per recipient, and broadcasts a best-effort push to the
// recipients' devices
type NotificationService struct {
	resolver   *RecipientResolver
	notifRepo  *repository.NotificationRepository
	deviceRepo *repository.DeviceRepository
	pusher     Pusher
}

func NewNotificationService(
	resolver *RecipientResolver,
	notifRepo *repository.NotificationRepository,
	deviceRepo *repository.DeviceRepository,
	pusher Pusher,
) *NotificationService {
	return &NotificationService{
		resolver:   resolver,
		notifRepo:  notifRepo,
		deviceRepo: deviceRepo,
		pusher:     pusher,
	}
}

// Dispatch fans an event out: one durable row per resolved recipient in a
// single batched insert, then a push broadcast in the background. The push
// never blocks the caller and its failures never surface; a returned error
// means the durable insert failed, which callers log without rolling back
// their own mutation.
func (s *NotificationService) Dispatch(ctx context.Context, event Event) error {
	recipients, err := s.resolver.Resolve(event)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	rows := make([]model.AppNotification, 0, len(recipients))
	for _, recipientID := range recipients {
		row := model.AppNotification{
			DoctorID: recipientID,
			Type:     event.Type,
			TypeID:   event.SubjectID,
			Content:  event.Content,
		}
		if event.ActorID != uuid.Nil {
			actorID := event.ActorID
			row.TypeDoctorID = &actorID
		}
		rows = append(rows, row)
	}

	if err := s.notifRepo.CreateBatch(rows); err != nil {
		return err
	}

	// No ordering guarantee between the insert above and the push below
	go s.pushBroadcast(recipients, event)

	return nil
}

// pushBroadcast collects the recipients' device tokens and issues a single
// multicast call, retrying once. Every failure is logged and swallowed.
func (s *NotificationService) pushBroadcast(recipients []uuid.UUID, event Event) {
	if s.pusher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	tokens, err := s.deviceRepo.TokensForDoctors(recipients)
	if err != nil {
		log.Printf("⚠️ Push broadcast skipped, token lookup failed: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	data := map[string]string{"type": string(event.Type)}
	if event.SubjectID != nil {
		data["type_id"] = event.SubjectID.String()
	}

	if err := s.pusher.SendMulticast(ctx, tokens, event.Title, event.Content, data); err != nil {
		log.Printf("⚠️ Push broadcast failed, retrying: %v", err)
		time.Sleep(pushRetryDelay)
		if err := s.pusher.SendMulticast(ctx, tokens, event.Title, event.Content, data); err != nil {
			log.Printf("❌ Push broadcast failed after retry: %v", err)
		}
	}
}

// List returns a page of the doctor's notifications, newest first
func (s *NotificationService) List(doctorID uuid.UUID, limit, offset int) (*model.NotificationListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	notifications, total, err := s.notifRepo.ListByDoctor(doctorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &model.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
	}, nil
}

// UnreadCount returns the doctor's unread notification count
func (s *NotificationService) UnreadCount(doctorID uuid.UUID) (int64, error) {
	return s.notifRepo.UnreadCount(doctorID)
}

// MarkRead flips one notification to read. Idempotent: marking an
// already-read notification succeeds. Unknown or foreign IDs return
// ErrNotificationNotFound.
func (s *NotificationService) MarkRead(id, doctorID uuid.UUID) error {
	matched, err := s.notifRepo.MarkRead(id, doctorID)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification owned by the doctor
func (s *NotificationService) MarkAllRead(doctorID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(doctorID)
}

// RegisterDevice stores a device push token for the doctor
func (s *NotificationService) RegisterDevice(doctorID uuid.UUID, token, platform string) error {
	return s.deviceRepo.Upsert(doctorID, token, platform)
}

// Devices lists the doctor's registered devices
func (s *NotificationService) Devices(doctorID uuid.UUID) ([]model.DeviceToken, error) {
	return s.deviceRepo.ListByDoctor(doctorID)
}

// RemoveForSubject deletes all notifications about a subject entity.
// Called when the subject (e.g. a group) is deleted.
func (s *NotificationService) RemoveForSubject(subjectID uuid.UUID) error {
	return s.notifRepo.DeleteBySubject(subjectID)
}
