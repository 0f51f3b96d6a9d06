package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotGroupOwner      = errors.New("only the group owner may do this")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationClosed   = errors.New("invitation has already been answered")
)

// GroupService handles groups, invitations and join requests
type GroupService struct {
	groupRepo     *repository.GroupRepository
	doctorRepo    *repository.DoctorRepository
	notifications *NotificationService
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	doctorRepo *repository.DoctorRepository,
	notifications *NotificationService,
) *GroupService {
	return &GroupService{
		groupRepo:     groupRepo,
		doctorRepo:    doctorRepo,
		notifications: notifications,
	}
}

// Create creates a group owned by the caller
func (s *GroupService) Create(doctorID uuid.UUID, req model.CreateGroupRequest) (*model.Group, error) {
	group := &model.Group{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     doctorID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Invite creates a pending invitation and notifies the invited doctor.
// Only the owner may invite.
func (s *GroupService) Invite(ctx context.Context, actorID, groupID, inviteeID uuid.UUID) (*model.GroupInvitation, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if group.OwnerID != actorID {
		return nil, ErrNotGroupOwner
	}
	if _, err := s.doctorRepo.FindByID(inviteeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	invitation := &model.GroupInvitation{
		GroupID:     groupID,
		DoctorID:    inviteeID,
		InvitedByID: actorID,
		Status:      model.InvitationPending,
	}
	if err := s.groupRepo.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	event := Event{
		Type:           model.NotificationGroupInvite,
		ActorID:        actorID,
		SubjectID:      &group.ID,
		TargetDoctorID: &inviteeID,
		Title:          "Group invitation",
		Content:        fmt.Sprintf("%s invited you to join %s", s.actorName(actorID), group.Name),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch group-invite notification: %v", err)
	}

	return invitation, nil
}

// AcceptInvitation answers a pending invitation, adds the caller to the
// group, and notifies the group owner
func (s *GroupService) AcceptInvitation(ctx context.Context, actorID, invitationID uuid.UUID) error {
	invitation, err := s.groupRepo.FindInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	if invitation.DoctorID != actorID {
		return ErrInvitationNotFound
	}
	if invitation.Status != model.InvitationPending {
		return ErrInvitationClosed
	}

	if err := s.groupRepo.UpdateInvitationStatus(invitationID, model.InvitationAccepted); err != nil {
		return err
	}
	if err := s.groupRepo.AddMember(invitation.GroupID, actorID); err != nil {
		return err
	}

	groupID := invitation.GroupID
	event := Event{
		Type:      model.NotificationGroupInviteAccepted,
		ActorID:   actorID,
		SubjectID: &groupID,
		GroupID:   &groupID,
		Title:     "Invitation accepted",
		Content:   fmt.Sprintf("%s accepted your group invitation", s.actorName(actorID)),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch invite-accepted notification: %v", err)
	}

	return nil
}

// RequestJoin notifies the group owner that the caller wants to join
func (s *GroupService) RequestJoin(ctx context.Context, actorID, groupID uuid.UUID) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	event := Event{
		Type:      model.NotificationGroupJoinRequest,
		ActorID:   actorID,
		SubjectID: &group.ID,
		GroupID:   &group.ID,
		Title:     "Join request",
		Content:   fmt.Sprintf("%s requested to join %s", s.actorName(actorID), group.Name),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch join-request notification: %v", err)
	}

	return nil
}

// Delete removes a group and cascades away the notifications about it.
// Only the owner may delete.
func (s *GroupService) Delete(actorID, groupID uuid.UUID) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	if group.OwnerID != actorID {
		return ErrNotGroupOwner
	}

	if err := s.groupRepo.Delete(groupID); err != nil {
		return err
	}
	return s.notifications.RemoveForSubject(groupID)
}

func (s *GroupService) actorName(doctorID uuid.UUID) string {
	if actor, err := s.doctorRepo.FindByID(doctorID); err == nil {
		return "Dr. " + actor.Name
	}
	return "A colleague"
}
