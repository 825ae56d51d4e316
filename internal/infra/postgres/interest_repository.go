package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eguilbert/cineapi/internal/domain"
)

// InterestRepository implements domain.InterestRepository using PostgreSQL.
type InterestRepository struct {
	db *gorm.DB
}

// NewInterestRepository creates a new PostgreSQL interest repository.
func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

// Upsert applies last-write-wins on the (user, film) pair.
func (r *InterestRepository) Upsert(ctx context.Context, interest *domain.Interest) error {
	model := &InterestModel{
		UserID:    interest.UserID,
		FilmID:    interest.FilmID,
		Value:     string(interest.Value),
		UpdatedAt: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "film_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upserting interest: %w", err)
	}

	interest.ID = model.ID
	interest.CreatedAt = model.CreatedAt
	interest.UpdatedAt = model.UpdatedAt

	return nil
}

// valueCount is the GROUP BY scan target.
type valueCount struct {
	FilmID int64
	Value  string
	Count  float64
}

// CountByValue returns raw per-value tallies for one film.
func (r *InterestRepository) CountByValue(ctx context.Context, filmID int64) (domain.RawInterestCounts, error) {
	var rows []valueCount
	err := r.db.WithContext(ctx).
		Model(&InterestModel{}).
		Select("value, COUNT(*) AS count").
		Where("film_id = ?", filmID).
		Group("value").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting interests for film %d: %w", filmID, err)
	}

	counts := make(domain.RawInterestCounts, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}

	return counts, nil
}

// CountByValueForFilms returns raw tallies grouped per film. Films
// without votes are absent from the result.
func (r *InterestRepository) CountByValueForFilms(ctx context.Context, filmIDs []int64) (map[int64]domain.RawInterestCounts, error) {
	if len(filmIDs) == 0 {
		return map[int64]domain.RawInterestCounts{}, nil
	}

	var rows []valueCount
	err := r.db.WithContext(ctx).
		Model(&InterestModel{}).
		Select("film_id, value, COUNT(*) AS count").
		Where("film_id IN ?", filmIDs).
		Group("film_id, value").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting interests for films: %w", err)
	}

	result := make(map[int64]domain.RawInterestCounts)
	for _, row := range rows {
		if result[row.FilmID] == nil {
			result[row.FilmID] = make(domain.RawInterestCounts)
		}
		result[row.FilmID][row.Value] = row.Count
	}

	return result, nil
}

// ListByUser returns a user's interests with the film preloaded.
func (r *InterestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Interest, error) {
	var models []InterestModel
	err := r.db.WithContext(ctx).
		Preload("Film").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing interests for user: %w", err)
	}

	interests := make([]*domain.Interest, len(models))
	for i := range models {
		interests[i] = models[i].ToDomain()
	}

	return interests, nil
}

// Count returns the total number of interest rows.
func (r *InterestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&InterestModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting interests: %w", err)
	}

	return count, nil
}

// RatingRepository implements domain.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert applies last-write-wins on the (user, film) pair.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	model := &RatingModel{
		UserID:    rating.UserID,
		FilmID:    rating.FilmID,
		Note:      rating.Note,
		Comment:   rating.Comment,
		UpdatedAt: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "film_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note", "comment", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upserting rating: %w", err)
	}

	rating.ID = model.ID
	rating.CreatedAt = model.CreatedAt
	rating.UpdatedAt = model.UpdatedAt

	return nil
}

// AverageForFilm returns the mean note for a film, 0 when unrated.
func (r *RatingRepository) AverageForFilm(ctx context.Context, filmID int64) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&RatingModel{}).
		Select("AVG(note)").
		Where("film_id = ?", filmID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("averaging ratings for film %d: %w", filmID, err)
	}
	if avg == nil {
		return 0, nil
	}

	return *avg, nil
}

// ActivityRepository implements domain.ActivityRepository using PostgreSQL.
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new PostgreSQL activity repository.
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append writes one audit-trail row.
func (r *ActivityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	model := &ActivityModel{
		UserID:   entry.UserID,
		Action:   entry.Action,
		TargetID: entry.TargetID,
		Context:  entry.Context,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("appending activity entry: %w", err)
	}

	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt

	return nil
}
