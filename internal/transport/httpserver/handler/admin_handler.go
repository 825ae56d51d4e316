package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
)

// CacheClearer drops every cached read model. Satisfied by the Redis
// cache; nil when caching is disabled.
type CacheClearer interface {
	Clear(ctx context.Context) error
}

// AdminHandler handles operational HTTP requests.
type AdminHandler struct {
	refresh *service.RefreshService
	catalog domain.Catalog
	cache   CacheClearer
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(refresh *service.RefreshService, catalog domain.Catalog, cache CacheClearer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		refresh: refresh,
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// Refresh handles POST /api/v1/admin/refresh
// Runs one synchronous refresh pass outside the scheduler.
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	h.logger.Info("manual refresh triggered")

	result, err := h.refresh.RefreshUpcoming(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(dto.FromRefreshResult(result))
}

// ClearCache handles POST /api/v1/admin/cache/clear
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "cache is disabled",
			Code:  "CACHE_DISABLED",
		})
	}

	if err := h.cache.Clear(c.Context()); err != nil {
		return err
	}

	h.logger.Info("cache cleared by operator")

	return c.JSON(dto.StatusResponse{Status: "cleared"})
}

// CatalogHealth handles GET /api/v1/admin/tmdb/health
func (h *AdminHandler) CatalogHealth(c *fiber.Ctx) error {
	if err := h.catalog.HealthCheck(c.Context()); err != nil {
		h.logger.Warn("catalog health check failed", zap.Error(err))

		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "metadata API unreachable",
			Code:  "CATALOG_DOWN",
		})
	}

	return c.JSON(dto.StatusResponse{Status: "ok"})
}
