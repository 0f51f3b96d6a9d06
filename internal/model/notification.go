package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType is the closed set of events that produce notifications
type NotificationType string

const (
	NotificationNewPatient          NotificationType = "new_patient"
	NotificationNewPost             NotificationType = "new_post"
	NotificationGroupInvite         NotificationType = "group_invitation"
	NotificationGroupInviteAccepted NotificationType = "group_invitation_accepted"
	NotificationGroupJoinRequest    NotificationType = "group_join_request"
	NotificationSyndicateCard       NotificationType = "syndicate_card_decision"
	NotificationConsultation        NotificationType = "consultation_request"
)

// AppNotification is the durable in-app notification row. One row per
// recipient; the only mutation after insert is flipping Read to true.
type AppNotification struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	DoctorID     uuid.UUID        `json:"doctor_id" gorm:"type:uuid;not null;index"`
	Type         NotificationType `json:"type" gorm:"size:40;not null"`
	TypeID       *uuid.UUID       `json:"type_id" gorm:"type:uuid"`        // subject entity (patient, post, group, ...)
	TypeDoctorID *uuid.UUID       `json:"type_doctor_id" gorm:"type:uuid"` // acting doctor
	Content      string           `json:"content" gorm:"type:text"`
	Read         bool             `json:"read" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided
func (n *AppNotification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
