package repository

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupRepository handles database operations for Group and its invitations
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create creates a new group with its owner as first member
func (r *GroupRepository) Create(group *model.Group) error {
	group.Members = []model.GroupMember{
		{DoctorID: group.OwnerID, Role: model.MemberRoleOwner},
	}
	return r.db.Create(group).Error
}

// FindByID finds a group by ID with members
func (r *GroupRepository) FindByID(id uuid.UUID) (*model.Group, error) {
	var group model.Group
	err := r.db.
		Preload("Members").
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// AddMember adds a doctor to a group
func (r *GroupRepository) AddMember(groupID, doctorID uuid.UUID) error {
	member := model.GroupMember{
		GroupID:  groupID,
		DoctorID: doctorID,
		Role:     model.MemberRoleMember,
	}
	return r.db.Create(&member).Error
}

// IsMember checks if a doctor is a member of a group
func (r *GroupRepository) IsMember(groupID, doctorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.GroupMember{}).
		Where("group_id = ? AND doctor_id = ?", groupID, doctorID).
		Count(&count).Error
	return count > 0, err
}

// Delete soft-deletes a group and its membership rows
func (r *GroupRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("group_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&model.Group{}).Error
}

// CreateInvitation inserts a pending invitation
func (r *GroupRepository) CreateInvitation(inv *model.GroupInvitation) error {
	return r.db.Create(inv).Error
}

// FindInvitation finds an invitation by ID
func (r *GroupRepository) FindInvitation(id uuid.UUID) (*model.GroupInvitation, error) {
	var inv model.GroupInvitation
	err := r.db.Where("id = ?", id).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvitationStatus moves an invitation to a terminal status
func (r *GroupRepository) UpdateInvitationStatus(id uuid.UUID, status model.InvitationStatus) error {
	return r.db.Model(&model.GroupInvitation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
