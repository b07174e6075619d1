package handlers

import (
	"errors"
	"strconv"
	"strings"

	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/pagination"
	"memberhub/internal/pkg/response"
	"memberhub/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles admin member endpoints
type MemberHandler struct {
	memberService *services.MemberService
	saver         *upload.Saver
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, saver *upload.Saver) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		saver:         saver,
	}
}

// List returns members filtered and paginated
// @Summary List members
// @Description List members with search and filters
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search name, email, or member identifier"
// @Param zone_id query int false "Filter by zone"
// @Param status query string false "Filter by status"
// @Param membership_type query string false "Filter by tier"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.MemberFilter{
		Search:         strings.TrimSpace(c.Query("search")),
		Status:         c.Query("status"),
		MembershipType: c.Query("membership_type"),
	}
	if zoneID, err := strconv.Atoi(c.Query("zone_id")); err == nil && zoneID > 0 {
		filter.ZoneID = uint(zoneID)
	}

	members, total, err := h.memberService.List(c.Context(), filter, *params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", pagination.NewResponse(members, params, total))
}

// Get returns a member with recent payments
// @Summary Get member
// @Description Get a member's details and recent payments
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	detail, err := h.memberService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", detail)
}

// Create creates a member
// @Summary Create member
// @Description Create a member from the admin console
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.BadRequest(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid membership type")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created successfully", member)
}

// Update partially updates a member
// @Summary Update member
// @Description Update a member's details
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	member, err := h.memberService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.BadRequest(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid membership type or status")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", member)
}

// Disable soft-disables a member account
// @Summary Disable member
// @Description Disable a member account without deleting its records
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [delete]
func (h *MemberHandler) Disable(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Disable(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to disable member")
	}

	return response.Success(c, "Member disabled successfully", nil)
}

// UploadImage stores a member's profile image
// @Summary Upload member image
// @Description Upload a profile image for the member
// @Tags Members
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param image formData file true "Profile image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id}/image [post]
func (h *MemberHandler) UploadImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	url, err := h.saver.SaveImage(c, file, "members")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.Update(c.Context(), uint(id), &services.UpdateMemberInput{ImageURL: &url})
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to update member image")
	}

	return response.Success(c, "Image uploaded successfully", member)
}
