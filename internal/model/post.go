package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed post, optionally attached to a group
type Post struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	DoctorID  uuid.UUID      `json:"doctor_id" gorm:"type:uuid;not null;index"`
	GroupID   *uuid.UUID     `json:"group_id" gorm:"type:uuid;index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID when none was provided
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
