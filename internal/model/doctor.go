package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyndicateCardStatus tracks the review state of a doctor's syndicate card
type SyndicateCardStatus string

const (
	SyndicateCardPending  SyndicateCardStatus = "pending"
	SyndicateCardApproved SyndicateCardStatus = "approved"
	SyndicateCardRejected SyndicateCardStatus = "rejected"
)

// Doctor represents a registered doctor account, the platform's only principal
type Doctor struct {
	ID                  uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	Name                string              `json:"name" gorm:"size:100;not null"`
	Email               string              `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password            string              `json:"-" gorm:"size:255"`
	Specialty           string              `json:"specialty" gorm:"size:100;default:''"`
	Workplace           string              `json:"workplace" gorm:"size:255;default:''"`
	SyndicateCardStatus SyndicateCardStatus `json:"syndicate_card_status" gorm:"size:20;default:'pending'"`
	IsVerified          bool                `json:"is_verified" gorm:"default:false"`
	IsAdmin             bool                `json:"is_admin" gorm:"default:false"`
	// User Settings
	IsNotificationEnabled bool `json:"is_notification_enabled" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID when none was provided
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DoctorResponse is the safe version of Doctor for API responses
type DoctorResponse struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Specialty           string              `json:"specialty"`
	Workplace           string              `json:"workplace"`
	SyndicateCardStatus SyndicateCardStatus `json:"syndicate_card_status"`
	IsVerified          bool                `json:"is_verified"`
	IsAdmin             bool                `json:"is_admin"`
}

// ToResponse converts Doctor to safe DoctorResponse
func (d *Doctor) ToResponse() DoctorResponse {
	return DoctorResponse{
		ID:                  d.ID,
		Name:                d.Name,
		Email:               d.Email,
		Specialty:           d.Specialty,
		Workplace:           d.Workplace,
		SyndicateCardStatus: d.SyndicateCardStatus,
		IsVerified:          d.IsVerified,
		IsAdmin:             d.IsAdmin,
	}
}
