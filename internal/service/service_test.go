package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// Each test gets its own named database so they cannot see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Doctor{},
		&model.AppNotification{},
		&model.DeviceToken{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupInvitation{},
		&model.Patient{},
		&model.PatientSectionStatus{},
		&model.Post{},
		&model.Consultation{},
		&model.ConsultationMember{},
	))

	return db
}

func createDoctor(t *testing.T, db *gorm.DB, name string, verified bool) *model.Doctor {
	t.Helper()

	doctor := &model.Doctor{
		Name:       name,
		Email:      fmt.Sprintf("%s-%s@egyakin.local", name, uuid.NewString()[:8]),
		IsVerified: verified,
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func createGroup(t *testing.T, db *gorm.DB, owner *model.Doctor) *model.Group {
	t.Helper()

	group := &model.Group{
		Name:    "Case Reviews",
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(group).Error)
	require.NoError(t, db.Create(&model.GroupMember{
		GroupID:  group.ID,
		DoctorID: owner.ID,
		Role:     model.MemberRoleOwner,
	}).Error)
	return group
}

// fakePusher records multicast calls and can be told to fail the first N of them
type fakePusher struct {
	mu       sync.Mutex
	calls    [][]string
	failures int
}

func (f *fakePusher) SendMulticast(_ context.Context, tokens []string, _, _ string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tokens)
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("fcm unavailable")
	}
	return nil
}

func (f *fakePusher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
