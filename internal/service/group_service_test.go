package service

import (
	"context"
	"testing"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGroupService(db *gorm.DB) *GroupService {
	return NewGroupService(
		repository.NewGroupRepository(db),
		repository.NewDoctorRepository(db),
		newNotificationService(db, nil),
	)
}

func TestInviteRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	owner := createDoctor(t, db, "owner", true)
	member := createDoctor(t, db, "member", true)
	invitee := createDoctor(t, db, "invitee", true)
	group := createGroup(t, db, owner)

	_, err := svc.Invite(context.Background(), member.ID, group.ID, invitee.ID)
	assert.ErrorIs(t, err, ErrNotGroupOwner)

	invitation, err := svc.Invite(context.Background(), owner.ID, group.ID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationPending, invitation.Status)

	// Invitee got notified
	var rows []model.AppNotification
	require.NoError(t, db.Where("doctor_id = ?", invitee.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, model.NotificationGroupInvite, rows[0].Type)
}

func TestInviteUnknownInviteeReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	owner := createDoctor(t, db, "owner", true)
	group := createGroup(t, db, owner)

	_, err := svc.Invite(context.Background(), owner.ID, group.ID, uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	var count int64
	require.NoError(t, db.Model(&model.GroupInvitation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAcceptInvitationAddsMemberAndNotifiesOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	owner := createDoctor(t, db, "owner", true)
	invitee := createDoctor(t, db, "invitee", true)
	group := createGroup(t, db, owner)

	invitation, err := svc.Invite(context.Background(), owner.ID, group.ID, invitee.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AcceptInvitation(context.Background(), invitee.ID, invitation.ID))

	var member model.GroupMember
	require.NoError(t, db.Where("group_id = ? AND doctor_id = ?", group.ID, invitee.ID).First(&member).Error)

	var ownerRows []model.AppNotification
	require.NoError(t, db.Where("doctor_id = ? AND type = ?", owner.ID, model.NotificationGroupInviteAccepted).Find(&ownerRows).Error)
	assert.Len(t, ownerRows, 1)
}

func TestAcceptInvitationRejectsNonInvitee(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	owner := createDoctor(t, db, "owner", true)
	invitee := createDoctor(t, db, "invitee", true)
	stranger := createDoctor(t, db, "stranger", true)
	group := createGroup(t, db, owner)

	invitation, err := svc.Invite(context.Background(), owner.ID, group.ID, invitee.ID)
	require.NoError(t, err)

	// A stranger cannot tell this invitation apart from a missing one
	err = svc.AcceptInvitation(context.Background(), stranger.ID, invitation.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestAcceptInvitationTwiceIsClosed(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	owner := createDoctor(t, db, "owner", true)
	invitee := createDoctor(t, db, "invitee", true)
	group := createGroup(t, db, owner)

	invitation, err := svc.Invite(context.Background(), owner.ID, group.ID, invitee.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AcceptInvitation(context.Background(), invitee.ID, invitation.ID))
	err = svc.AcceptInvitation(context.Background(), invitee.ID, invitation.ID)
	assert.ErrorIs(t, err, ErrInvitationClosed)
}

func TestDeleteGroupCascadesNotifications(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	owner := createDoctor(t, db, "owner", true)
	invitee := createDoctor(t, db, "invitee", true)
	group := createGroup(t, db, owner)

	_, err := svc.Invite(context.Background(), owner.ID, group.ID, invitee.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner.ID, group.ID))

	var count int64
	require.NoError(t, db.Model(&model.AppNotification{}).Where("type_id = ?", group.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = svc.Delete(owner.ID, group.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestRequestJoinMissingGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)

	requester := createDoctor(t, db, "requester", true)

	err := svc.RequestJoin(context.Background(), requester.ID, uuid.New())
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
