package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberRole defines a member's role within a group
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// InvitationStatus tracks the lifecycle of a group invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Group is a discussion group owned by one doctor
type Group struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"type:text;default:''"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Members []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID"`
}

// BeforeCreate assigns a UUID when none was provided
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroupMember links a doctor to a group
type GroupMember struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID  `json:"group_id" gorm:"type:uuid;not null;index"`
	DoctorID  uuid.UUID  `json:"doctor_id" gorm:"type:uuid;not null;index"`
	Role      MemberRole `json:"role" gorm:"size:20;default:'member'"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Doctor Doctor `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
}

// BeforeCreate assigns a UUID when none was provided
func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// GroupInvitation is a pending/answered invite of a doctor into a group
type GroupInvitation struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID     uuid.UUID        `json:"group_id" gorm:"type:uuid;not null;index"`
	DoctorID    uuid.UUID        `json:"doctor_id" gorm:"type:uuid;not null;index"` // invitee
	InvitedByID uuid.UUID        `json:"invited_by_id" gorm:"type:uuid;not null"`
	Status      InvitationStatus `json:"status" gorm:"size:20;default:'pending'"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided
func (i *GroupInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
