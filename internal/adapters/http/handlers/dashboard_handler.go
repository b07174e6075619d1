package handlers

import (
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns the dashboard summary
// @Summary Dashboard stats
// @Description Get member, event, and revenue overview statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	data, err := h.dashboardService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard stats")
	}

	return response.Success(c, "Dashboard stats retrieved successfully", data)
}

// Revenue returns the revenue breakdown
// @Summary Revenue breakdown
// @Description Get monthly revenue series and totals by payment type
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard/revenue [get]
func (h *DashboardHandler) Revenue(c *fiber.Ctx) error {
	data, err := h.dashboardService.Revenue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get revenue stats")
	}

	return response.Success(c, "Revenue stats retrieved successfully", data)
}
