package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eguilbert/cineapi/internal/domain"
)

// ProgrammingRepository implements domain.ProgrammingRepository using
// PostgreSQL.
type ProgrammingRepository struct {
	db *gorm.DB
}

// NewProgrammingRepository creates a new PostgreSQL programming repository.
func NewProgrammingRepository(db *gorm.DB) *ProgrammingRepository {
	return &ProgrammingRepository{db: db}
}

// UpsertBatch writes every allocation in one transaction, keyed
// (selection, film, cinema). Re-submission overwrites values for the
// triples present in the batch and leaves other triples alone.
func (r *ProgrammingRepository) UpsertBatch(ctx context.Context, items []domain.ProgrammingItem) error {
	if len(items) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			model := &ProgrammingModel{
				SelectionID: items[i].SelectionID,
				FilmID:      items[i].FilmID,
				CinemaID:    items[i].CinemaID,
				Suggested:   items[i].Suggested,
				CapLabel:    items[i].CapLabel,
				Notes:       items[i].Notes,
				CycleID:     items[i].CycleID,
			}

			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "selection_id"}, {Name: "film_id"}, {Name: "cinema_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"suggested", "cap_label", "notes", "cycle_id",
				}),
			}).Create(model).Error
			if err != nil {
				return err
			}

			items[i].ID = model.ID
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("upserting programming batch: %w", err)
	}

	return nil
}

// ListBySelection returns all allocations for a selection.
func (r *ProgrammingRepository) ListBySelection(ctx context.Context, selectionID int64) ([]domain.ProgrammingItem, error) {
	var models []ProgrammingModel
	err := r.db.WithContext(ctx).
		Where("selection_id = ?", selectionID).
		Order("film_id ASC, cinema_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing programming: %w", err)
	}

	items := make([]domain.ProgrammingItem, len(models))
	for i := range models {
		items[i] = models[i].ToDomain()
	}

	return items, nil
}

// AddComment appends one operator note. Comments are never edited or
// deleted.
func (r *ProgrammingRepository) AddComment(ctx context.Context, comment *domain.ProgrammingComment) error {
	model := &ProgrammingCommentModel{
		SelectionID: comment.SelectionID,
		FilmID:      comment.FilmID,
		CinemaID:    comment.CinemaID,
		UserID:      comment.UserID,
		Body:        comment.Body,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("adding programming comment: %w", err)
	}

	comment.ID = model.ID
	comment.CreatedAt = model.CreatedAt

	return nil
}

// ListComments returns the notes for a (selection, film) pair in
// chronological order.
func (r *ProgrammingRepository) ListComments(ctx context.Context, selectionID, filmID int64) ([]domain.ProgrammingComment, error) {
	var models []ProgrammingCommentModel
	err := r.db.WithContext(ctx).
		Where("selection_id = ? AND film_id = ?", selectionID, filmID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing programming comments: %w", err)
	}

	comments := make([]domain.ProgrammingComment, len(models))
	for i := range models {
		comments[i] = models[i].ToDomain()
	}

	return comments, nil
}
