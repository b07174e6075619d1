package handlers

import (
	"errors"

	"memberhub/internal/core/domain"
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ZoneHandler handles admin zone endpoints
type ZoneHandler struct {
	zoneService *services.ZoneService
}

// NewZoneHandler creates a new zone handler
func NewZoneHandler(zoneService *services.ZoneService) *ZoneHandler {
	return &ZoneHandler{zoneService: zoneService}
}

// List returns all zones with member counts
// @Summary List zones
// @Description List all zones with their member counts
// @Tags Zones
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	zones, err := h.zoneService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list zones")
	}
	return response.Success(c, "Zones retrieved successfully", zones)
}

// Create creates a zone
// @Summary Create zone
// @Description Create a new zone
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ZoneInput true "Zone data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var input services.ZoneInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	zone, err := h.zoneService.Create(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create zone")
	}

	return response.Created(c, "Zone created successfully", zone)
}

// Update updates a zone
// @Summary Update zone
// @Description Update a zone's name and description
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Zone ID"
// @Param body body services.ZoneInput true "Zone data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/zones/{id} [put]
func (h *ZoneHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid zone ID")
	}

	var input services.ZoneInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationErrors(c, validationMessages(err))
	}

	zone, err := h.zoneService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Zone not found")
		}
		return response.InternalServerError(c, "Failed to update zone")
	}

	return response.Success(c, "Zone updated successfully", zone)
}
