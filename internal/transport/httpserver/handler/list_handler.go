package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
	"github.com/eguilbert/cineapi/internal/validator"
)

// ListHandler handles film collection HTTP requests.
type ListHandler struct {
	lists     *service.ListService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(lists *service.ListService, v *validator.Validator, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		lists:     lists,
		validator: v,
		logger:    logger,
	}
}

// List handles GET /api/v1/lists
func (h *ListHandler) List(c *fiber.Ctx) error {
	var req dto.ListCollectionsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	lists, err := h.lists.Lists(c.Context(), domain.ListType(req.Type))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"lists": lists})
}

// Resolve handles GET /api/v1/lists/:slug
func (h *ListHandler) Resolve(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "slug is required",
			Code:  "MISSING_SLUG",
		})
	}

	var req dto.ResolveListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	if req.Limit == 0 {
		req.Limit = 50
	}

	resolved, err := h.lists.Resolve(c.Context(), slug, req.Limit, req.Offset)
	if err != nil {
		return err
	}

	return c.JSON(resolved)
}
