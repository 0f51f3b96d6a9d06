package repository

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"gorm.io/gorm"
)

// ConsultationRepository handles database operations for Consultation
type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// Create inserts a consultation with its member rows
func (r *ConsultationRepository) Create(consultation *model.Consultation) error {
	return r.db.Create(consultation).Error
}
