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

// FilmRepository implements domain.FilmRepository using PostgreSQL.
type FilmRepository struct {
	db *gorm.DB
}

// NewFilmRepository creates a new PostgreSQL film repository.
func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// List finds films matching the filter, newest releases first.
func (r *FilmRepository) List(ctx context.Context, filter domain.FilmFilter) ([]*domain.Film, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&FilmModel{})
	if filter.Query != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting films: %w", err)
	}

	var models []FilmModel
	err := query.
		Order("release_date DESC NULLS LAST").
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing films: %w", err)
	}

	films := make([]*domain.Film, len(models))
	for i := range models {
		films[i] = models[i].ToDomain()
	}

	return films, total, nil
}

// GetByID retrieves a single film by its internal ID.
func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	var model FilmModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting film by id: %w", err)
	}

	return model.ToDomain(), nil
}

// GetByTmdbID retrieves a film by its external TMDB id.
func (r *FilmRepository) GetByTmdbID(ctx context.Context, tmdbID int64) (*domain.Film, error) {
	var model FilmModel
	err := r.db.WithContext(ctx).Where("tmdb_id = ? AND tmdb_id <> 0", tmdbID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting film by tmdb id: %w", err)
	}

	return model.ToDomain(), nil
}

// Upsert creates or updates a film. Imported films conflict on tmdb_id;
// films without one are plain inserts.
func (r *FilmRepository) Upsert(ctx context.Context, film *domain.Film) error {
	model := FilmFromDomain(film)
	model.UpdatedAt = time.Now().UTC()

	query := r.db.WithContext(ctx)
	if film.TmdbID != 0 {
		query = query.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tmdb_id"}},
			TargetWhere: clause.Where{
				Exprs: []clause.Expression{gorm.Expr("tmdb_id <> 0")},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "synopsis", "genre", "duration", "origin", "country",
				"director", "actors", "tags", "poster_url", "trailer_url",
				"rating", "release_date", "updated_at",
			}),
		})
	}

	if err := query.Create(model).Error; err != nil {
		return fmt.Errorf("upserting film: %w", err)
	}

	film.ID = model.ID
	film.CreatedAt = model.CreatedAt
	film.UpdatedAt = model.UpdatedAt

	return nil
}

// Update persists curator edits on an existing film.
func (r *FilmRepository) Update(ctx context.Context, film *domain.Film) error {
	model := FilmFromDomain(film)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&FilmModel{}).Where("id = ?", film.ID).Updates(model)
	if result.Error != nil {
		return fmt.Errorf("updating film: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("film %d", film.ID)
	}

	return nil
}

// ListUpcoming returns films whose release date is after now.
func (r *FilmRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.Film, error) {
	var models []FilmModel
	err := r.db.WithContext(ctx).
		Where("release_date IS NOT NULL AND release_date > ?", now).
		Order("release_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing upcoming films: %w", err)
	}

	films := make([]*domain.Film, len(models))
	for i := range models {
		films[i] = models[i].ToDomain()
	}

	return films, nil
}

// ListByKind resolves a dynamic list kind to films.
func (r *FilmRepository) ListByKind(ctx context.Context, kind string, limit int) ([]*domain.Film, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&FilmModel{})
	now := time.Now().UTC()

	switch kind {
	case domain.DynamicReleasesThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.
			Where("release_date >= ? AND release_date < ?", start, end).
			Order("release_date ASC")
	case domain.DynamicRecentlyAdded:
		query = query.Order("created_at DESC")
	default:
		return nil, domain.Validationf("unknown dynamic list kind %q", kind)
	}

	var models []FilmModel
	if err := query.Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("resolving dynamic list %q: %w", kind, err)
	}

	films := make([]*domain.Film, len(models))
	for i := range models {
		films[i] = models[i].ToDomain()
	}

	return films, nil
}

// Count returns the total number of catalogued films.
func (r *FilmRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FilmModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting films: %w", err)
	}

	return count, nil
}
