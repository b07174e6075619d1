package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))
	require.NoError(t, db.Create(&models.Zone{Name: "Central"}).Error)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedHandlerMember(t *testing.T, db *gorm.DB, code, email string) *models.Member {
	t.Helper()

	member := &models.Member{
		MemberID:       code,
		Name:           "Test Member",
		Email:          email,
		Phone:          "0812345678",
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

func postJSON(t *testing.T, app *fiber.App, path string, payload any) int {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func newHandlerMemberService(db *gorm.DB) *services.MemberService {
	return services.NewMemberService(
		db,
		repositories.NewMemberRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewEventRepository(db),
	)
}

func TestCreateMemberDuplicateEmailReturns400(t *testing.T) {
	db := setupHandlerDB(t)
	handler := NewMemberHandler(newHandlerMemberService(db), upload.NewSaver(t.TempDir(), 1<<20))

	seedHandlerMember(t, db, "MEM000301", "taken@example.com")

	app := fiber.New()
	app.Post("/admin/members", handler.Create)

	status := postJSON(t, app, "/admin/members", fiber.Map{
		"name":            "New Member",
		"email":           "taken@example.com",
		"phone":           "0899999999",
		"password":        "supersecret",
		"membership_type": "basic",
		"zone_id":         1,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRegisterForFullEventReturns400(t *testing.T) {
	db := setupHandlerDB(t)
	eventService := services.NewEventService(
		repositories.NewEventRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewPaymentRepository(db),
	)
	handler := NewMobileHandler(newHandlerMemberService(db), eventService)

	first := seedHandlerMember(t, db, "MEM000302", "first@example.com")
	second := seedHandlerMember(t, db, "MEM000303", "second@example.com")

	event := &models.Event{
		Title:        "Tiny Meetup",
		EventType:    domain.EventTypeMeeting,
		EventDate:    time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC),
		MaxAttendees: 1,
		Status:       domain.EventUpcoming,
		IsActive:     true,
	}
	require.NoError(t, db.Create(event).Error)

	asMember := func(id uint) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("memberID", id)
			return c.Next()
		}
	}

	firstApp := fiber.New()
	firstApp.Post("/mobile/events/:id/register", asMember(first.ID), handler.RegisterForEvent)
	status := postJSON(t, firstApp, fmt.Sprintf("/mobile/events/%d/register", event.ID), fiber.Map{})
	require.Equal(t, fiber.StatusCreated, status)

	secondApp := fiber.New()
	secondApp.Post("/mobile/events/:id/register", asMember(second.ID), handler.RegisterForEvent)
	status = postJSON(t, secondApp, fmt.Sprintf("/mobile/events/%d/register", event.ID), fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Registering again as the first member is a duplicate, also 400.
	status = postJSON(t, firstApp, fmt.Sprintf("/mobile/events/%d/register", event.ID), fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
