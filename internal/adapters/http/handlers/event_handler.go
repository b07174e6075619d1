package handlers

import (
	"errors"
	"time"

	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/pagination"
	"memberhub/internal/pkg/response"
	"memberhub/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles admin event endpoints
type EventHandler struct {
	eventService *services.EventService
	saver        *upload.Saver
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, saver *upload.Saver) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		saver:        saver,
	}
}

// List returns events filtered and paginated
// @Summary List events
// @Description List events with filters
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param event_type query string false "Filter by type"
// @Param from query string false "Events on or after this date (RFC 3339)"
// @Param to query string false "Events before this date (RFC 3339)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.EventFilter{
		Status:    c.Query("status"),
		EventType: c.Query("event_type"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}

	events, total, err := h.eventService.List(c.Context(), filter, *params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, "Events retrieved successfully", pagination.NewResponse(events, params, total))
}

// Get returns an event with attendance counts
// @Summary Get event
// @Description Get an event's details and attendance counts
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to get event")
	}

	return response.Success(c, "Event retrieved successfully", event)
}

// Create creates an event
// @Summary Create event
// @Description Create an event from the admin console
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEventInput true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	event, err := h.eventService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid event type or dates")
		}
		return response.InternalServerError(c, "Failed to create event")
	}

	return response.Created(c, "Event created successfully", event)
}

// Update partially updates an event
// @Summary Update event
// @Description Update an event's details
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body services.UpdateEventInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	var input services.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	event, err := h.eventService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid event type, status, or dates")
		default:
			return response.InternalServerError(c, "Failed to update event")
		}
	}

	return response.Success(c, "Event updated successfully", event)
}

// Cancel marks an event cancelled
// @Summary Cancel event
// @Description Cancel an event without deleting its records
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id} [delete]
func (h *EventHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.Cancel(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to cancel event")
	}

	return response.Success(c, "Event cancelled successfully", nil)
}

// ListAttendance returns every registration for the event
// @Summary List event attendance
// @Description List all registrations for an event with member details
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id}/attendance [get]
func (h *EventHandler) ListAttendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	attendance, err := h.eventService.ListAttendance(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", attendance)
}

// RecordAttendance records an attendance outcome
// @Summary Record attendance
// @Description Record a registration's attendance outcome
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body services.RecordAttendanceInput true "Attendance data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id}/attendance [post]
func (h *EventHandler) RecordAttendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	var input services.RecordAttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	attendance, err := h.eventService.RecordAttendance(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid attendance status")
		default:
			return response.InternalServerError(c, "Failed to record attendance")
		}
	}

	return response.Success(c, "Attendance recorded successfully", attendance)
}

// Payments returns the payments linked to the event
// @Summary List event payments
// @Description List payments tied to an event's registrations with the revenue total
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id}/payments [get]
func (h *EventHandler) Payments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	payments, err := h.eventService.Payments(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to list event payments")
	}

	return response.Success(c, "Event payments retrieved successfully", payments)
}

// UploadImage stores an event banner image
// @Summary Upload event image
// @Description Upload a banner image for the event
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param image formData file true "Event image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id}/image [post]
func (h *EventHandler) UploadImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	url, err := h.saver.SaveImage(c, file, "events")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	event, err := h.eventService.Update(c.Context(), uint(id), &services.UpdateEventInput{ImageURL: &url})
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to update event image")
	}

	return response.Success(c, "Image uploaded successfully", event)
}
