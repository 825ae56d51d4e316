package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/eguilbert/cineapi/internal/domain"
)

// CinemaRepository implements domain.CinemaRepository using PostgreSQL.
type CinemaRepository struct {
	db *gorm.DB
}

// NewCinemaRepository creates a new PostgreSQL cinema repository.
func NewCinemaRepository(db *gorm.DB) *CinemaRepository {
	return &CinemaRepository{db: db}
}

// List returns venues, optionally filtered by a name substring.
func (r *CinemaRepository) List(ctx context.Context, query string) ([]*domain.Cinema, error) {
	q := r.db.WithContext(ctx).Model(&CinemaModel{})
	if query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}

	var models []CinemaModel
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing cinemas: %w", err)
	}

	cinemas := make([]*domain.Cinema, len(models))
	for i := range models {
		cinemas[i] = models[i].ToDomain()
	}

	return cinemas, nil
}

// Create inserts a new venue. Slugs are unique.
func (r *CinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	model := &CinemaModel{Name: cinema.Name, Slug: cinema.Slug}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Validationf("cinema slug %q already exists", cinema.Slug)
		}

		return fmt.Errorf("creating cinema: %w", err)
	}

	cinema.ID = model.ID

	return nil
}
