package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	stats  *service.StatsService
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(stats *service.StatsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:  stats,
		logger: logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	overview, err := h.stats.Overview(c.Context())
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		overview = &service.Overview{}
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":    "Cineapi Dashboard",
		"Overview": overview,
	}, "layouts/base")
}

// Overview handles GET /api/v1/stats
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.stats.Overview(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(overview)
}
