// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
	"github.com/eguilbert/cineapi/internal/validator"
)

// FilmHandler handles catalog HTTP requests.
type FilmHandler struct {
	films     *service.FilmService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFilmHandler creates a new FilmHandler.
func NewFilmHandler(films *service.FilmService, v *validator.Validator, logger *zap.Logger) *FilmHandler {
	return &FilmHandler{
		films:     films,
		validator: v,
		logger:    logger,
	}
}

// List handles GET /api/v1/films
func (h *FilmHandler) List(c *fiber.Ctx) error {
	var req dto.ListFilmsRequest
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

	filter := req.ToFilter()
	films, total, err := h.films.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewFilmListResponse(films, total, filter))
}

// Get handles GET /api/v1/films/:id
func (h *FilmHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	detail, err := h.films.Get(c.Context(), int64(id))
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// Create handles POST /api/v1/films
func (h *FilmHandler) Create(c *fiber.Ctx) error {
	var req dto.FilmRequest
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

	film, err := h.films.Create(c.Context(), req.ToFilm())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(film)
}

// Update handles PUT /api/v1/films/:id
func (h *FilmHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.FilmRequest
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

	film := req.ToFilm()
	film.ID = int64(id)

	updated, err := h.films.Update(c.Context(), film)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Import handles POST /api/v1/films/import
func (h *FilmHandler) Import(c *fiber.Ctx) error {
	var req dto.ImportFilmRequest
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

	film, err := h.films.Import(c.Context(), req.TmdbID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(film)
}
