package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a structured medical case record owned by the submitting doctor
type Patient struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	DoctorID  uuid.UUID      `json:"doctor_id" gorm:"type:uuid;not null;index"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Hospital  string         `json:"hospital" gorm:"size:255;default:''"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Sections []PatientSectionStatus `json:"sections,omitempty" gorm:"foreignKey:PatientID"`
}

// BeforeCreate assigns a UUID when none was provided
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PatientSectionStatus is the per-section completion flag of a patient case
type PatientSectionStatus struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PatientID uuid.UUID `json:"patient_id" gorm:"type:uuid;not null;index"`
	Section   string    `json:"section" gorm:"size:50;not null"` // history, examination, outcome, ...
	Complete  bool      `json:"complete" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided
func (s *PatientSectionStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
