package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
	"github.com/eguilbert/cineapi/internal/validator"
)

// CinemaHandler handles venue HTTP requests.
type CinemaHandler struct {
	cinemas   *service.CinemaService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCinemaHandler creates a new CinemaHandler.
func NewCinemaHandler(cinemas *service.CinemaService, v *validator.Validator, logger *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		cinemas:   cinemas,
		validator: v,
		logger:    logger,
	}
}

// List handles GET /api/v1/cinemas
func (h *CinemaHandler) List(c *fiber.Ctx) error {
	cinemas, err := h.cinemas.List(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"cinemas": cinemas})
}

// Create handles POST /api/v1/cinemas
func (h *CinemaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCinemaRequest
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

	cinema, err := h.cinemas.Create(c.Context(), &domain.Cinema{Name: req.Name, Slug: req.Slug})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cinema)
}
