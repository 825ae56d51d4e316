package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// ProgrammingService handles per-cinema seance allocation for approved
// selections.
type ProgrammingService struct {
	programming domain.ProgrammingRepository
	selections  domain.SelectionRepository
	logger      *zap.Logger
}

// NewProgrammingService creates a new ProgrammingService.
func NewProgrammingService(
	programming domain.ProgrammingRepository,
	selections domain.SelectionRepository,
	logger *zap.Logger,
) *ProgrammingService {
	return &ProgrammingService{
		programming: programming,
		selections:  selections,
		logger:      logger,
	}
}

// Upsert validates and writes a batch of allocations for one approved
// selection. Any out-of-range item rejects the whole batch before a
// single row is touched.
func (s *ProgrammingService) Upsert(ctx context.Context, selectionID int64, items []domain.ProgrammingItem) ([]domain.ProgrammingItem, error) {
	selection, err := s.selections.GetByID(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, domain.NotFoundf("selection %d", selectionID)
	}
	if !selection.Approved() {
		return nil, domain.Validationf("selection %d is not approved, programming is closed", selectionID)
	}

	members := make(map[int64]struct{}, len(selection.Films))
	for _, sf := range selection.Films {
		members[sf.FilmID] = struct{}{}
	}

	for i := range items {
		items[i].SelectionID = selectionID
		if _, ok := members[items[i].FilmID]; !ok {
			return nil, domain.Validationf("film %d outside selection %d", items[i].FilmID, selectionID)
		}
	}

	if err := domain.ValidateProgramming(items); err != nil {
		return nil, err
	}

	if err := s.programming.UpsertBatch(ctx, items); err != nil {
		return nil, err
	}

	s.logger.Info("programming batch applied",
		zap.Int64("selection_id", selectionID),
		zap.Int("items", len(items)),
	)

	return s.programming.ListBySelection(ctx, selectionID)
}

// List returns the allocations for a selection.
func (s *ProgrammingService) List(ctx context.Context, selectionID int64) ([]domain.ProgrammingItem, error) {
	selection, err := s.selections.GetByID(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, domain.NotFoundf("selection %d", selectionID)
	}

	return s.programming.ListBySelection(ctx, selectionID)
}

// Comment appends one operator note for a (selection, film) pair.
func (s *ProgrammingService) Comment(ctx context.Context, comment *domain.ProgrammingComment) (*domain.ProgrammingComment, error) {
	comment.Body = strings.TrimSpace(comment.Body)
	if comment.Body == "" {
		return nil, domain.Validationf("comment body is required")
	}

	selection, err := s.selections.GetByID(ctx, comment.SelectionID)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, domain.NotFoundf("selection %d", comment.SelectionID)
	}

	if err := s.programming.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Comments returns the notes for a (selection, film) pair, oldest first.
func (s *ProgrammingService) Comments(ctx context.Context, selectionID, filmID int64) ([]domain.ProgrammingComment, error) {
	return s.programming.ListComments(ctx, selectionID, filmID)
}
