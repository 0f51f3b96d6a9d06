package repository

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorRepository handles database operations for Doctor
type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// Create inserts a new doctor
func (r *DoctorRepository) Create(doctor *model.Doctor) error {
	return r.db.Create(doctor).Error
}

// FindByID finds a doctor by UUID
func (r *DoctorRepository) FindByID(id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// FindByEmail finds a doctor by email
func (r *DoctorRepository) FindByEmail(email string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.Where("email = ?", email).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// VerifiedIDs returns the IDs of all verified doctors except the given one
func (r *DoctorRepository) VerifiedIDs(exclude uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.Doctor{}).
		Where("is_verified = ? AND id != ?", true, exclude).
		Pluck("id", &ids).Error
	return ids, err
}

// ExistingIDs filters the given IDs down to doctors that currently exist.
// Soft-deleted accounts are excluded.
func (r *DoctorRepository) ExistingIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var existing []uuid.UUID
	err := r.db.Model(&model.Doctor{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error
	return existing, err
}

// SetSyndicateDecision records the admin decision on a doctor's syndicate card.
// Approval also marks the doctor verified. Returns rows affected so callers
// can distinguish an unknown doctor.
func (r *DoctorRepository) SetSyndicateDecision(id uuid.UUID, status model.SyndicateCardStatus) (int64, error) {
	res := r.db.Model(&model.Doctor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"syndicate_card_status": status,
			"is_verified":           status == model.SyndicateCardApproved,
		})
	return res.RowsAffected, res.Error
}
