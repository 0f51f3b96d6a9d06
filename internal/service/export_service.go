package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/egyakin/egyakin-api/pkg/queue"
	"github.com/egyakin/egyakin-api/pkg/storage"
	"github.com/google/uuid"
)

// JobKindNotificationExport identifies notification-history export jobs
const JobKindNotificationExport = "notification_export"

type notificationExportPayload struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

// ExportService enqueues heavy report generation onto the job queue and
// exposes the pollable progress record. Workers write the finished CSV to
// object storage and record its download URL.
type ExportService struct {
	jobs      *queue.Queue
	notifRepo *repository.NotificationRepository
	storage   storage.Storage
}

func NewExportService(jobs *queue.Queue, notifRepo *repository.NotificationRepository, store storage.Storage) *ExportService {
	return &ExportService{
		jobs:      jobs,
		notifRepo: notifRepo,
		storage:   store,
	}
}

// EnqueueNotificationExport queues an export of the doctor's notification
// history and returns the job ID to poll
func (s *ExportService) EnqueueNotificationExport(ctx context.Context, doctorID uuid.UUID) (string, error) {
	return s.jobs.Enqueue(ctx, JobKindNotificationExport, notificationExportPayload{DoctorID: doctorID})
}

// Progress returns the progress record for an export job, nil when unknown
func (s *ExportService) Progress(ctx context.Context, jobID string) (*queue.Progress, error) {
	return s.jobs.Progress(ctx, jobID)
}

// Handlers returns the job handlers this service contributes to the worker
// pool
func (s *ExportService) Handlers() map[string]queue.Handler {
	return map[string]queue.Handler{
		JobKindNotificationExport: s.handleNotificationExport,
	}
}

func (s *ExportService) handleNotificationExport(ctx context.Context, job queue.Job) (string, error) {
	if s.storage == nil {
		return "", errors.New("object storage not configured")
	}

	var payload notificationExportPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("invalid export payload: %w", err)
	}

	notifications, err := s.notifRepo.AllByDoctor(payload.DoctorID)
	if err != nil {
		return "", fmt.Errorf("failed to load notifications: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "type", "content", "read", "created_at"})
	for _, n := range notifications {
		_ = w.Write([]string{
			n.ID.String(),
			string(n.Type),
			n.Content,
			strconv.FormatBool(n.Read),
			n.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}

	objectName := fmt.Sprintf("exports/%s/%s.csv", payload.DoctorID, job.ID)
	result, err := s.storage.UploadFromReader(ctx, &buf, int64(buf.Len()), objectName, "text/csv")
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	return result.URL, nil
}
