package service

import (
	"testing"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResolver(db *gorm.DB) *RecipientResolver {
	return NewRecipientResolver(
		repository.NewDoctorRepository(db),
		repository.NewGroupRepository(db),
	)
}

func TestResolveNewPatientTargetsVerifiedDoctorsExceptAuthor(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	author := createDoctor(t, db, "author", true)
	verified1 := createDoctor(t, db, "verified1", true)
	verified2 := createDoctor(t, db, "verified2", true)
	createDoctor(t, db, "unverified", false)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationNewPatient,
		ActorID: author.ID,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{verified1.ID, verified2.ID}, recipients)
}

func TestResolveNewPostTargetsVerifiedDoctors(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	author := createDoctor(t, db, "author", true)
	reader := createDoctor(t, db, "reader", true)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationNewPost,
		ActorID: author.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{reader.ID}, recipients)
}

func TestResolveGroupInviteTargetsInvitee(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	owner := createDoctor(t, db, "owner", true)
	invitee := createDoctor(t, db, "invitee", true)

	recipients, err := resolver.Resolve(Event{
		Type:           model.NotificationGroupInvite,
		ActorID:        owner.ID,
		TargetDoctorID: &invitee.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{invitee.ID}, recipients)
}

func TestResolveGroupInviteMissingTargetIsEmpty(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	owner := createDoctor(t, db, "owner", true)
	ghost := uuid.New()

	recipients, err := resolver.Resolve(Event{
		Type:           model.NotificationGroupInvite,
		ActorID:        owner.ID,
		TargetDoctorID: &ghost,
	})
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestResolveJoinRequestTargetsGroupOwner(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	owner := createDoctor(t, db, "owner", true)
	requester := createDoctor(t, db, "requester", true)
	group := createGroup(t, db, owner)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationGroupJoinRequest,
		ActorID: requester.ID,
		GroupID: &group.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{owner.ID}, recipients)
}

func TestResolveJoinRequestDeletedGroupIsEmpty(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	requester := createDoctor(t, db, "requester", true)
	ghost := uuid.New()

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationGroupJoinRequest,
		ActorID: requester.ID,
		GroupID: &ghost,
	})
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestResolveInviteAcceptedByOwnerIsEmpty(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	// The owner accepting into their own group must not notify themselves
	owner := createDoctor(t, db, "owner", true)
	group := createGroup(t, db, owner)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationGroupInviteAccepted,
		ActorID: owner.ID,
		GroupID: &group.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestResolveConsultationUsesExplicitRecipients(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	requester := createDoctor(t, db, "requester", true)
	memberA := createDoctor(t, db, "memberA", true)
	memberB := createDoctor(t, db, "memberB", true)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationConsultation,
		ActorID: requester.ID,
		RecipientIDs: []uuid.UUID{
			memberA.ID,
			memberB.ID,
			memberA.ID,   // duplicate
			requester.ID, // actor
			uuid.Nil,     // junk
		},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{memberA.ID, memberB.ID}, recipients)
}

func TestResolveConsultationDropsDanglingRecipients(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	requester := createDoctor(t, db, "requester", true)
	member := createDoctor(t, db, "member", true)
	removed := createDoctor(t, db, "removed", true)
	require.NoError(t, db.Delete(&model.Doctor{}, "id = ?", removed.ID).Error)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationConsultation,
		ActorID: requester.ID,
		RecipientIDs: []uuid.UUID{
			member.ID,
			removed.ID, // soft-deleted account
			uuid.New(), // never existed
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{member.ID}, recipients)
}

func TestResolveConsultationAllRecipientsGoneIsEmpty(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	requester := createDoctor(t, db, "requester", true)

	recipients, err := resolver.Resolve(Event{
		Type:         model.NotificationConsultation,
		ActorID:      requester.ID,
		RecipientIDs: []uuid.UUID{uuid.New(), uuid.New()},
	})
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestResolveUnknownEventTypeIsEmpty(t *testing.T) {
	db := newTestDB(t)
	resolver := newResolver(db)

	recipients, err := resolver.Resolve(Event{
		Type:    model.NotificationType("something_else"),
		ActorID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Empty(t, recipients)
}
