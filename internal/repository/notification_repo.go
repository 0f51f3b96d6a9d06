package repository

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for AppNotification
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateBatch inserts all rows in a single multi-row statement
func (r *NotificationRepository) CreateBatch(notifications []model.AppNotification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

// ListByDoctor returns a doctor's notifications, newest first, with the total count
func (r *NotificationRepository) ListByDoctor(doctorID uuid.UUID, limit, offset int) ([]model.AppNotification, int64, error) {
	var total int64
	if err := r.db.Model(&model.AppNotification{}).
		Where("doctor_id = ?", doctorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.AppNotification
	err := r.db.
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

// AllByDoctor returns every notification owned by a doctor, oldest first.
// Used by the export worker.
func (r *NotificationRepository) AllByDoctor(doctorID uuid.UUID) ([]model.AppNotification, error) {
	var notifications []model.AppNotification
	err := r.db.
		Where("doctor_id = ?", doctorID).
		Order("created_at ASC").
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount counts a doctor's unread notifications
func (r *NotificationRepository) UnreadCount(doctorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.AppNotification{}).
		Where("doctor_id = ? AND read = ?", doctorID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one of the doctor's notifications to read. Returns rows
// matched so callers can 404 on an unknown or foreign ID. Marking an
// already-read row again matches but changes nothing.
func (r *NotificationRepository) MarkRead(id, doctorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&model.AppNotification{}).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	err := r.db.Model(&model.AppNotification{}).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Update("read", true).Error
	return count, err
}

// MarkAllRead flips every unread notification owned by the doctor
func (r *NotificationRepository) MarkAllRead(doctorID uuid.UUID) error {
	return r.db.Model(&model.AppNotification{}).
		Where("doctor_id = ? AND read = ?", doctorID, false).
		Update("read", true).Error
}

// DeleteBySubject removes all notifications referencing a subject entity.
// Used when the subject (e.g. a group) is deleted.
func (r *NotificationRepository) DeleteBySubject(typeID uuid.UUID) error {
	return r.db.
		Where("type_id = ?", typeID).
		Delete(&model.AppNotification{}).Error
}
