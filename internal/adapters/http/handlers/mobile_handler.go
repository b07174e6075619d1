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

// MobileHandler handles the member-facing mobile endpoints
type MobileHandler struct {
	memberService *services.MemberService
	eventService  *services.EventService
}

// NewMobileHandler creates a new mobile handler
func NewMobileHandler(memberService *services.MemberService, eventService *services.EventService) *MobileHandler {
	return &MobileHandler{
		memberService: memberService,
		eventService:  eventService,
	}
}

// RenewRequest represents membership renewal request body
type RenewRequest struct {
	MembershipType string  `json:"membership_type" validate:"omitempty,oneof=basic premium vip lifetime"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
}

// Home returns the mobile home screen data
// @Summary Home screen
// @Description Get the member summary, expiry countdown, next event, and recent payments
// @Tags Mobile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/home [get]
func (h *MobileHandler) Home(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.memberService.Home(c.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get home data")
	}

	return response.Success(c, "Home data retrieved successfully", data)
}

// Card returns the membership card
// @Summary Membership card
// @Description Get the member's card details and card code
// @Tags Mobile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/card [get]
func (h *MobileHandler) Card(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	card, err := h.memberService.Card(c.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get membership card")
	}

	return response.Success(c, "Membership card retrieved successfully", card)
}

// Renew extends the membership by one year
// @Summary Renew membership
// @Description Extend the membership by one year and record the payment
// @Tags Mobile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RenewRequest true "Renewal payment"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/membership/renew [post]
func (h *MobileHandler) Renew(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RenewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	result, err := h.memberService.Renew(c.Context(), memberID, req.MembershipType, req.Amount, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to renew membership")
	}

	return response.Success(c, "Membership renewed successfully", result)
}

// Payments returns the member's payment history
// @Summary Payment history
// @Description Get the member's payments, newest first
// @Tags Mobile
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/payments [get]
func (h *MobileHandler) Payments(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	payments, total, err := h.memberService.PaymentHistory(c.Context(), memberID, *params)
	if err != nil {
		return response.InternalServerError(c, "Failed to get payment history")
	}

	return response.Success(c, "Payments retrieved successfully", pagination.NewResponse(payments, params, total))
}

// Events returns upcoming events for the mobile app
// @Summary List events
// @Description List events visible to members
// @Tags Mobile
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /mobile/events [get]
func (h *MobileHandler) Events(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status", string(domain.EventUpcoming))

	events, total, err := h.eventService.ListForMembers(c.Context(), status, *params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, "Events retrieved successfully", pagination.NewResponse(events, params, total))
}

// RegisterForEvent registers the member for an event
// @Summary Register for event
// @Description Register the authenticated member for an event
// @Tags Mobile
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mobile/events/{id}/register [post]
func (h *MobileHandler) RegisterForEvent(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	attendance, err := h.eventService.Register(c.Context(), uint(id), memberID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrAlreadyRegistered):
			return response.BadRequest(c, "Already registered for this event")
		case errors.Is(err, domain.ErrEventFull):
			return response.BadRequest(c, "Event is full")
		case errors.Is(err, domain.ErrMemberInactive):
			return response.Forbidden(c, "Account is disabled")
		default:
			return response.InternalServerError(c, "Failed to register for event")
		}
	}

	return response.Created(c, "Registered for event successfully", attendance)
}

// MyEvents returns the member's event registrations
// @Summary My event registrations
// @Description List the member's event registrations
// @Tags Mobile
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by attendance status"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /mobile/events/mine [get]
func (h *MobileHandler) MyEvents(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	registrations, err := h.eventService.MemberRegistrations(c.Context(), memberID, c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list registrations")
	}

	return response.Success(c, "Registrations retrieved successfully", registrations)
}
