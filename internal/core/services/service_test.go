package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an isolated in-memory database with the full
// schema and one zone
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&models.Zone{Name: "Central", Description: "Default zone"}).Error)
	return db
}

// fixedClock returns a clock pinned to t0
func fixedClock(t0 time.Time) func() time.Time {
	return func() time.Time { return t0 }
}

func newTestMember(t *testing.T, db *gorm.DB, code, name, email string) *models.Member {
	t.Helper()

	member := &models.Member{
		MemberID:       code,
		Name:           name,
		Email:          email,
		Phone:          "0812345678",
		Password:       "$2a$12$0000000000000000000000000000000000000000000000000000",
		MembershipType: string(domain.MembershipBasic),
		Status:         string(domain.MemberActive),
		JoinDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ZoneID:         1,
		IsActive:       true,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func newTestEvent(t *testing.T, db *gorm.DB, title string, maxAttendees int) *models.Event {
	t.Helper()

	event := &models.Event{
		Title:        title,
		EventType:    domain.EventTypeMeeting,
		EventDate:    time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC),
		Location:     "Main Hall",
		MaxAttendees: maxAttendees,
		Status:       domain.EventUpcoming,
		IsActive:     true,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func newMemberService(db *gorm.DB) *MemberService {
	return NewMemberService(
		db,
		repositories.NewMemberRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewEventRepository(db),
	)
}

func newEventService(db *gorm.DB) *EventService {
	return NewEventService(
		repositories.NewEventRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewPaymentRepository(db),
	)
}

func newNotificationService(db *gorm.DB) *NotificationService {
	return NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewEventRepository(db),
	)
}
