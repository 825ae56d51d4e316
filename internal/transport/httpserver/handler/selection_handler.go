package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/middleware"
	"github.com/eguilbert/cineapi/internal/validator"
)

// SelectionHandler drives the selection workflow over HTTP.
type SelectionHandler struct {
	selections *service.SelectionService
	validator  *validator.Validator
	logger     *zap.Logger
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(selections *service.SelectionService, v *validator.Validator, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		selections: selections,
		validator:  v,
		logger:     logger,
	}
}

// List handles GET /api/v1/selections
func (h *SelectionHandler) List(c *fiber.Ctx) error {
	selections, err := h.selections.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"selections": selections})
}

// Get handles GET /api/v1/selections/:id
func (h *SelectionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	selection, err := h.selections.Get(c.Context(), int64(id))
	if err != nil {
		return err
	}

	return c.JSON(selection)
}

// Create handles POST /api/v1/selections
func (h *SelectionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSelectionRequest
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

	selection, err := h.selections.Create(c.Context(), req.Name, req.FilmIDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(selection)
}

// Delete handles DELETE /api/v1/selections/:id
func (h *SelectionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	if err := h.selections.Delete(c.Context(), int64(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddFilm handles POST /api/v1/selections/:id/films
func (h *SelectionHandler) AddFilm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.AddSelectionFilmRequest
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

	sf, err := h.selections.AddFilm(c.Context(), int64(id), req.FilmID, req.TmdbID, req.Category, req.Comment)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(sf)
}

// RemoveFilm handles DELETE /api/v1/selections/:id/films/:filmID
func (h *SelectionHandler) RemoveFilm(c *fiber.Ctx) error {
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

	if err := h.selections.RemoveFilm(c.Context(), int64(id), int64(filmID)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// OpenVote handles POST /api/v1/selections/:id/open-vote
func (h *SelectionHandler) OpenVote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	selection, err := h.selections.OpenVote(c.Context(), int64(id))
	if err != nil {
		return err
	}

	return c.JSON(selection)
}

// Approve handles POST /api/v1/selections/:id/approve
func (h *SelectionHandler) Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid selection id",
			Code:  "INVALID_ID",
		})
	}

	var req dto.ApproveSelectionRequest
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
	selection, err := h.selections.Approve(c.Context(), int64(id), req.ToBallots(), req.NbVotants, principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(selection)
}
