package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consultation is a request from one doctor asking colleagues to weigh in
// on a patient case
type Consultation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PatientID uuid.UUID `json:"patient_id" gorm:"type:uuid;not null;index"`
	DoctorID  uuid.UUID `json:"doctor_id" gorm:"type:uuid;not null;index"` // requester
	Note      string    `json:"note" gorm:"type:text;default:''"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members []ConsultationMember `json:"members,omitempty" gorm:"foreignKey:ConsultationID"`
}

// BeforeCreate assigns a UUID when none was provided
func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ConsultationMember is one consulted doctor on a consultation
type ConsultationMember struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ConsultationID uuid.UUID `json:"consultation_id" gorm:"type:uuid;not null;index"`
	DoctorID       uuid.UUID `json:"doctor_id" gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when none was provided
func (m *ConsultationMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
