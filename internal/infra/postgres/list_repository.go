package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/eguilbert/cineapi/internal/domain"
)

// ListRepository implements domain.ListRepository using PostgreSQL.
type ListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new PostgreSQL list repository.
func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// List returns collections, optionally filtered by type.
func (r *ListRepository) List(ctx context.Context, listType domain.ListType) ([]*domain.List, error) {
	q := r.db.WithContext(ctx).Model(&ListModel{})
	if listType != "" {
		q = q.Where("type = ?", string(listType))
	}

	var models []ListModel
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}

	lists := make([]*domain.List, len(models))
	for i := range models {
		lists[i] = models[i].ToDomain()
	}

	return lists, nil
}

// GetBySlug retrieves a collection by its slug.
func (r *ListRepository) GetBySlug(ctx context.Context, slug string) (*domain.List, error) {
	var model ListModel
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting list by slug: %w", err)
	}

	return model.ToDomain(), nil
}

// CuratedItems returns a curated list's films in rank order.
func (r *ListRepository) CuratedItems(ctx context.Context, listID int64, limit, offset int) ([]*domain.Film, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var pivots []ListFilmModel
	err := r.db.WithContext(ctx).
		Preload("Film").
		Where("list_id = ?", listID).
		Order("rank ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&pivots).Error
	if err != nil {
		return nil, fmt.Errorf("listing curated items: %w", err)
	}

	films := make([]*domain.Film, 0, len(pivots))
	for i := range pivots {
		if pivots[i].Film != nil {
			films = append(films, pivots[i].Film.ToDomain())
		}
	}

	return films, nil
}
