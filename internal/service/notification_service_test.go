package service

import (
	"context"
	"testing"
	"time"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB, pusher Pusher) *NotificationService {
	return NewNotificationService(
		newResolver(db),
		repository.NewNotificationRepository(db),
		repository.NewDeviceRepository(db),
		pusher,
	)
}

func TestDispatchInsertsOneRowPerRecipient(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	author := createDoctor(t, db, "author", true)
	createDoctor(t, db, "colleague1", true)
	createDoctor(t, db, "colleague2", true)

	patientID := uuid.New()
	require.NoError(t, svc.Dispatch(context.Background(), Event{
		Type:      model.NotificationNewPatient,
		ActorID:   author.ID,
		SubjectID: &patientID,
		Content:   "Dr. author reported a new patient",
	}))

	var rows []model.AppNotification
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, model.NotificationNewPatient, row.Type)
		assert.Equal(t, patientID, *row.TypeID)
		assert.Equal(t, author.ID, *row.TypeDoctorID)
		assert.False(t, row.Read)
		assert.NotEqual(t, author.ID, row.DoctorID)
	}
}

func TestDispatchEmptyRecipientSetIsNoOp(t *testing.T) {
	db := newTestDB(t)
	pusher := &fakePusher{}
	svc := newNotificationService(db, pusher)

	// Lone author: nobody else to notify
	author := createDoctor(t, db, "author", true)

	require.NoError(t, svc.Dispatch(context.Background(), Event{
		Type:    model.NotificationNewPost,
		ActorID: author.ID,
		Content: "post",
	}))

	var count int64
	require.NoError(t, db.Model(&model.AppNotification{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, pusher.callCount())
}

func TestDispatchPushesRecipientTokens(t *testing.T) {
	db := newTestDB(t)
	pusher := &fakePusher{}
	svc := newNotificationService(db, pusher)

	author := createDoctor(t, db, "author", true)
	colleague := createDoctor(t, db, "colleague", true)

	require.NoError(t, svc.RegisterDevice(colleague.ID, "token-colleague", "android"))
	require.NoError(t, svc.RegisterDevice(author.ID, "token-author", "ios"))

	require.NoError(t, svc.Dispatch(context.Background(), Event{
		Type:    model.NotificationNewPatient,
		ActorID: author.ID,
		Title:   "New patient",
		Content: "Dr. author reported a new patient",
	}))

	assert.Eventually(t, func() bool {
		return pusher.callCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	assert.Equal(t, [][]string{{"token-colleague"}}, pusher.calls)
}

func TestDispatchRetriesPushOnceAndSwallowsFailure(t *testing.T) {
	db := newTestDB(t)
	pusher := &fakePusher{failures: 2}
	svc := newNotificationService(db, pusher)

	author := createDoctor(t, db, "author", true)
	colleague := createDoctor(t, db, "colleague", true)
	require.NoError(t, svc.RegisterDevice(colleague.ID, "token-colleague", "android"))

	// Both attempts fail; Dispatch must still succeed and the rows must persist
	require.NoError(t, svc.Dispatch(context.Background(), Event{
		Type:    model.NotificationNewPatient,
		ActorID: author.ID,
		Content: "content",
	}))

	assert.Eventually(t, func() bool {
		return pusher.callCount() == 2
	}, 10*time.Second, 50*time.Millisecond)

	var count int64
	require.NoError(t, db.Model(&model.AppNotification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	doctor := createDoctor(t, db, "doctor", true)
	notif := model.AppNotification{DoctorID: doctor.ID, Type: model.NotificationNewPost, Content: "x"}
	require.NoError(t, db.Create(&notif).Error)

	require.NoError(t, svc.MarkRead(notif.ID, doctor.ID))
	require.NoError(t, svc.MarkRead(notif.ID, doctor.ID))

	var reloaded model.AppNotification
	require.NoError(t, db.First(&reloaded, "id = ?", notif.ID).Error)
	assert.True(t, reloaded.Read)
}

func TestMarkReadUnknownIDReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	doctor := createDoctor(t, db, "doctor", true)

	err := svc.MarkRead(uuid.New(), doctor.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkReadForeignNotificationReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	owner := createDoctor(t, db, "owner", true)
	other := createDoctor(t, db, "other", true)
	notif := model.AppNotification{DoctorID: owner.ID, Type: model.NotificationNewPost, Content: "x"}
	require.NoError(t, db.Create(&notif).Error)

	err := svc.MarkRead(notif.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	var reloaded model.AppNotification
	require.NoError(t, db.First(&reloaded, "id = ?", notif.ID).Error)
	assert.False(t, reloaded.Read)
}

func TestMarkAllReadOnlyTouchesCallerRows(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	caller := createDoctor(t, db, "caller", true)
	other := createDoctor(t, db, "other", true)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.AppNotification{DoctorID: caller.ID, Type: model.NotificationNewPost, Content: "x"}).Error)
	}
	require.NoError(t, db.Create(&model.AppNotification{DoctorID: other.ID, Type: model.NotificationNewPost, Content: "x"}).Error)

	callerUnread, err := svc.UnreadCount(caller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, callerUnread)

	require.NoError(t, svc.MarkAllRead(caller.ID))

	callerUnread, err = svc.UnreadCount(caller.ID)
	require.NoError(t, err)
	assert.Zero(t, callerUnread)

	otherUnread, err := svc.UnreadCount(other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, otherUnread)
}

func TestRegisterDeviceMovesTokenOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	first := createDoctor(t, db, "first", true)
	second := createDoctor(t, db, "second", true)

	require.NoError(t, svc.RegisterDevice(first.ID, "shared-token", "android"))
	require.NoError(t, svc.RegisterDevice(second.ID, "shared-token", "ios"))

	var devices []model.DeviceToken
	require.NoError(t, db.Where("token = ?", "shared-token").Find(&devices).Error)
	require.Len(t, devices, 1)
	assert.Equal(t, second.ID, devices[0].DoctorID)
	assert.Equal(t, "ios", devices[0].Platform)
}

func TestRemoveForSubjectDeletesAllRowsForSubject(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	doctor := createDoctor(t, db, "doctor", true)
	groupID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, db.Create(&model.AppNotification{DoctorID: doctor.ID, Type: model.NotificationGroupInvite, TypeID: &groupID, Content: "x"}).Error)
	require.NoError(t, db.Create(&model.AppNotification{DoctorID: doctor.ID, Type: model.NotificationGroupInvite, TypeID: &otherID, Content: "x"}).Error)

	require.NoError(t, svc.RemoveForSubject(groupID))

	var rows []model.AppNotification
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, otherID, *rows[0].TypeID)
}

func TestListClampsPageSize(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db, nil)

	doctor := createDoctor(t, db, "doctor", true)
	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&model.AppNotification{DoctorID: doctor.ID, Type: model.NotificationNewPost, Content: "x"}).Error)
	}

	page, err := svc.List(doctor.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 20)
	assert.EqualValues(t, 25, page.Total)
}
