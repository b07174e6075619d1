package handlers

import (
	"errors"

	"memberhub/internal/adapters/http/middleware"
	"memberhub/internal/core/domain"
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/pagination"
	"memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints for both surfaces
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// AnnouncementRequest represents broadcast announcement request body
type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required"`
}

// ExpiryNoticeRequest targets one member with an expiry notice
type ExpiryNoticeRequest struct {
	MemberID uint `json:"member_id" validate:"required"`
}

// List returns the member's notifications
// @Summary List notifications
// @Description List the member's targeted and broadcast notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	notifications, total, err := h.notificationService.ListForMember(c.Context(), memberID, c.Query("status"), *params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid notification status")
		}
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", pagination.NewResponse(notifications, params, total))
}

// UnreadCount returns the member's unread notification count
// @Summary Unread count
// @Description Get the member's unread notification count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	count, err := h.notificationService.UnreadCount(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get unread count")
	}

	return response.Success(c, "Unread count retrieved successfully", fiber.Map{
		"unread_count": count,
	})
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Description Mark a notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mobile/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if _, ok := middleware.MemberID(c); !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification read")
	}

	return response.Success(c, "Notification marked read", nil)
}

// MarkAllRead marks all of the member's notifications read
// @Summary Mark all notifications read
// @Description Mark all of the member's notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	updated, err := h.notificationService.MarkAllRead(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to mark notifications read")
	}

	return response.Success(c, "Notifications marked read", fiber.Map{
		"updated": updated,
	})
}

// EventReminderRequest optionally narrows the reminder to specific members.
type EventReminderRequest struct {
	MemberIDs []uint `json:"member_ids"`
}

// SendEventReminder sends a reminder for an event
// @Summary Send event reminder
// @Description Send a reminder notification to registered members, or to an explicit member list
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body EventReminderRequest false "Optional member list"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/notifications/event-reminder/{id} [post]
func (h *NotificationHandler) SendEventReminder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	var req EventReminderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	result, err := h.notificationService.SendEventReminder(c.Context(), uint(id), req.MemberIDs)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to send event reminder")
	}

	return response.Success(c, "Event reminder sent", result)
}

// SendExpiryNotice sends a membership expiry notice to one member
// @Summary Send expiry notice
// @Description Send a membership expiry notice to a member
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExpiryNoticeRequest true "Target member"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/notifications/expiry-notice [post]
func (h *NotificationHandler) SendExpiryNotice(c *fiber.Ctx) error {
	var req ExpiryNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	if err := h.notificationService.SendMembershipExpiry(c.Context(), req.MemberID); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to send expiry notice")
	}

	return response.Success(c, "Expiry notice sent", nil)
}

// SendAnnouncement broadcasts an announcement to all members
// @Summary Send announcement
// @Description Broadcast an announcement to all active members
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnnouncementRequest true "Announcement"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/notifications/announcement [post]
func (h *NotificationHandler) SendAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	result, err := h.notificationService.SendAnnouncement(c.Context(), req.Title, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title and message are required")
		}
		return response.InternalServerError(c, "Failed to send announcement")
	}

	return response.Success(c, "Announcement sent", result)
}
