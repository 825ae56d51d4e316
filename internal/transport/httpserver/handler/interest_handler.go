package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/middleware"
	"github.com/eguilbert/cineapi/internal/validator"
)

// InterestHandler handles interest votes and ratings.
type InterestHandler struct {
	interests *service.InterestService
	ratings   *service.RatingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewInterestHandler creates a new InterestHandler.
func NewInterestHandler(
	interests *service.InterestService,
	ratings *service.RatingService,
	v *validator.Validator,
	logger *zap.Logger,
) *InterestHandler {
	return &InterestHandler{
		interests: interests,
		ratings:   ratings,
		validator: v,
		logger:    logger,
	}
}

// Cast handles POST /api/v1/films/:id/interests
func (h *InterestHandler) Cast(c *fiber.Ctx) error {
	filmID, err := c.ParamsInt("id")
	if err != nil || filmID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.CastInterestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	principal := middleware.Principal(c)
	interest, err := h.interests.Cast(c.Context(), principal.UserID, int64(filmID), domain.InterestValue(req.Value))
	if err != nil {
		return err
	}

	return c.JSON(interest)
}

// Stats handles GET /api/v1/films/:id/interests
func (h *InterestHandler) Stats(c *fiber.Ctx) error {
	filmID, err := c.ParamsInt("id")
	if err != nil || filmID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	stats, err := h.interests.StatsForFilm(c.Context(), int64(filmID))
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// Mine handles GET /api/v1/me/interests
func (h *InterestHandler) Mine(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	interests, err := h.interests.MyInterests(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"interests": interests})
}

// Rate handles POST /api/v1/films/:id/ratings
func (h *InterestHandler) Rate(c *fiber.Ctx) error {
	filmID, err := c.ParamsInt("id")
	if err != nil || filmID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.RateFilmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	principal := middleware.Principal(c)
	rating, err := h.ratings.Rate(c.Context(), principal.UserID, int64(filmID), req.Note, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(rating)
}
