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

// ProgrammingHandler handles per-cinema allocation for approved selections.
type ProgrammingHandler struct {
	programming *service.ProgrammingService
	validator   *validator.Validator
	logger      *zap.Logger
}

// NewProgrammingHandler creates a new ProgrammingHandler.
func NewProgrammingHandler(programming *service.ProgrammingService, v *validator.Validator, logger *zap.Logger) *ProgrammingHandler {
	return &ProgrammingHandler{
		programming: programming,
		validator:   v,
		logger:      logger,
	}
}

// List handles GET /api/v1/selections/:id/programming
func (h *ProgrammingHandler) List(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	items, err := h.programming.List(c.Context(), int64(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

// Upsert handles PUT /api/v1/selections/:id/programming
func (h *ProgrammingHandler) Upsert(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.ProgrammingBatchRequest
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

	items, err := h.programming.Upsert(c.Context(), int64(id), req.ToItems(int64(id)))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

// AddComment handles POST /api/v1/selections/:id/films/:filmID/comments
func (h *ProgrammingHandler) AddComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	filmID, err := c.ParamsInt("filmID")
	if err != nil || filmID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.ProgrammingCommentRequest
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
	comment := &domain.ProgrammingComment{
		SelectionID: int64(id),
		FilmID:      int64(filmID),
		CinemaID:    req.CinemaID,
		UserID:      principal.UserID,
		Body:        req.Body,
	}

	created, err := h.programming.Comment(c.Context(), comment)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListComments handles GET /api/v1/selections/:id/films/:filmID/comments
func (h *ProgrammingHandler) ListComments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	filmID, err := c.ParamsInt("filmID")
	if err != nil || filmID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid film id",
			Code:  "INVALID_ID",
		})
	}

	comments, err := h.programming.Comments(c.Context(), int64(id), int64(filmID))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"comments": comments})
}
