package repository

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultSections are created with every new patient case
var defaultSections = []string{"history", "examination", "outcome"}

// PatientRepository handles database operations for Patient
type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// CreateWithSections inserts the patient together with its initial section
// status rows in one transaction
func (r *PatientRepository) CreateWithSections(patient *model.Patient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return err
		}
		sections := make([]model.PatientSectionStatus, 0, len(defaultSections))
		for _, name := range defaultSections {
			sections = append(sections, model.PatientSectionStatus{
				PatientID: patient.ID,
				Section:   name,
			})
		}
		return tx.Create(&sections).Error
	})
}

// FindByID finds a patient by ID with section statuses
func (r *PatientRepository) FindByID(id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.
		Preload("Sections").
		Where("id = ?", id).
		First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
