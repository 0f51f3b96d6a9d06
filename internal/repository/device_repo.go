package repository

import (
	"time"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository handles database operations for DeviceToken
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Upsert registers a device token. If the token value already exists it is
// reassigned to the given doctor instead of inserting a duplicate row.
func (r *DeviceRepository) Upsert(doctorID uuid.UUID, token, platform string) error {
	device := model.DeviceToken{
		DoctorID:     doctorID,
		Token:        token,
		Platform:     platform,
		LastActiveAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"doctor_id":      doctorID,
			"platform":       platform,
			"last_active_at": time.Now(),
		}),
	}).Create(&device).Error
}

// TokensForDoctors returns the union of token values registered by the given
// doctors, deduplicated
func (r *DeviceRepository) TokensForDoctors(doctorIDs []uuid.UUID) ([]string, error) {
	if len(doctorIDs) == 0 {
		return nil, nil
	}
	var tokens []string
	err := r.db.Model(&model.DeviceToken{}).
		Distinct("token").
		Where("doctor_id IN ?", doctorIDs).
		Pluck("token", &tokens).Error
	return tokens, err
}

// ListByDoctor returns all devices registered by a doctor
func (r *DeviceRepository) ListByDoctor(doctorID uuid.UUID) ([]model.DeviceToken, error) {
	var devices []model.DeviceToken
	err := r.db.Where("doctor_id = ?", doctorID).Find(&devices).Error
	return devices, err
}
