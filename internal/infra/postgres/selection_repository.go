package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eguilbert/cineapi/internal/domain"
)

// SelectionRepository implements domain.SelectionRepository using PostgreSQL.
type SelectionRepository struct {
	db *gorm.DB
}

// NewSelectionRepository creates a new PostgreSQL selection repository.
func NewSelectionRepository(db *gorm.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create inserts the selection and its initial pivot rows in one
// transaction.
func (r *SelectionRepository) Create(ctx context.Context, selection *domain.Selection, filmIDs []int64) error {
	model := &SelectionModel{
		Name:   selection.Name,
		Status: string(selection.Status),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		for _, filmID := range filmIDs {
			pivot := &SelectionFilmModel{
				SelectionID: model.ID,
				FilmID:      filmID,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "selection_id"}, {Name: "film_id"}},
				DoNothing: true,
			}).Create(pivot).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("creating selection: %w", err)
	}

	selection.ID = model.ID
	selection.CreatedAt = model.CreatedAt
	selection.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves a selection with its films, highest frozen score
// first.
func (r *SelectionRepository) GetByID(ctx context.Context, id int64) (*domain.Selection, error) {
	var model SelectionModel
	err := r.db.WithContext(ctx).
		Preload("Films", func(db *gorm.DB) *gorm.DB {
			return db.Order("score DESC, id ASC")
		}).
		Preload("Films.Film").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting selection by id: %w", err)
	}

	return model.ToDomain(), nil
}

// List returns all selections without their films, newest first.
func (r *SelectionRepository) List(ctx context.Context) ([]*domain.Selection, error) {
	var models []SelectionModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing selections: %w", err)
	}

	selections := make([]*domain.Selection, len(models))
	for i := range models {
		selections[i] = models[i].ToDomain()
	}

	return selections, nil
}

// Delete removes a selection and its pivot rows.
func (r *SelectionRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("selection_id = ?", id).Delete(&SelectionFilmModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&SelectionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundf("selection %d", id)
		}

		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}

		return fmt.Errorf("deleting selection: %w", err)
	}

	return nil
}

// UpsertFilm adds or updates a pivot row keyed (selectionID, filmID).
// Concurrent calls for the same pair converge, last write wins on
// category and comment.
func (r *SelectionRepository) UpsertFilm(ctx context.Context, sf *domain.SelectionFilm) error {
	model := &SelectionFilmModel{
		SelectionID: sf.SelectionID,
		FilmID:      sf.FilmID,
		Category:    sf.Category,
		Comment:     sf.Comment,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "selection_id"}, {Name: "film_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "comment"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upserting selection film: %w", err)
	}

	sf.ID = model.ID

	return nil
}

// RemoveFilm deletes one pivot row.
func (r *SelectionRepository) RemoveFilm(ctx context.Context, selectionID, filmID int64) error {
	result := r.db.WithContext(ctx).
		Where("selection_id = ? AND film_id = ?", selectionID, filmID).
		Delete(&SelectionFilmModel{})
	if result.Error != nil {
		return fmt.Errorf("removing selection film: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("film %d in selection %d", filmID, selectionID)
	}

	return nil
}

// UpdateStatus persists a workflow transition.
func (r *SelectionRepository) UpdateStatus(ctx context.Context, id int64, status domain.SelectionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&SelectionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("updating selection status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("selection %d", id)
	}

	return nil
}

// Approve freezes scores and flips the selection status in a single
// transaction. A score for a film without a pivot row fails the whole
// batch; nothing is committed.
func (r *SelectionRepository) Approve(ctx context.Context, selectionID int64, scores map[int64]int, status domain.SelectionStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for filmID, score := range scores {
			result := tx.Model(&SelectionFilmModel{}).
				Where("selection_id = ? AND film_id = ?", selectionID, filmID).
				Updates(map[string]any{"score": score, "selected": true})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domain.NotFoundf("film %d in selection %d", filmID, selectionID)
			}
		}

		result := tx.Model(&SelectionModel{}).
			Where("id = ?", selectionID).
			Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundf("selection %d", selectionID)
		}

		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) || domain.IsValidation(err) {
			return err
		}

		return fmt.Errorf("approving selection: %w", err)
	}

	return nil
}

// CountByStatus returns selection counts grouped by workflow state.
func (r *SelectionRepository) CountByStatus(ctx context.Context) (map[domain.SelectionStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&SelectionModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting selections by status: %w", err)
	}

	counts := make(map[domain.SelectionStatus]int64, len(rows))
	for _, row := range rows {
		counts[domain.SelectionStatus(row.Status)] = row.Count
	}

	return counts, nil
}
