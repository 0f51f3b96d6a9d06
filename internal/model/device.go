package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceToken represents one registered device for push notifications.
// A token value is unique across the table: re-registering the same token
// from another account moves ownership instead of duplicating the row.
// Stale tokens are not actively pruned.
type DeviceToken struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	DoctorID     uuid.UUID `json:"doctor_id" gorm:"type:uuid;not null;index"`
	Token        string    `json:"token" gorm:"not null;uniqueIndex"`
	Platform     string    `json:"platform" gorm:"size:20;default:'unknown'"` // android, ios, web
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when none was provided
func (d *DeviceToken) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
