package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// CinemaService handles venue management.
type CinemaService struct {
	cinemas domain.CinemaRepository
	logger  *zap.Logger
}

// NewCinemaService creates a new CinemaService.
func NewCinemaService(cinemas domain.CinemaRepository, logger *zap.Logger) *CinemaService {
	return &CinemaService{cinemas: cinemas, logger: logger}
}

// List returns venues, optionally filtered by a name substring.
func (s *CinemaService) List(ctx context.Context, query string) ([]*domain.Cinema, error) {
	return s.cinemas.List(ctx, query)
}

// Create adds a venue. The slug is derived from the name when absent.
func (s *CinemaService) Create(ctx context.Context, cinema *domain.Cinema) (*domain.Cinema, error) {
	cinema.Name = strings.TrimSpace(cinema.Name)
	if cinema.Name == "" {
		return nil, domain.Validationf("cinema name is required")
	}
	if cinema.Slug == "" {
		cinema.Slug = slugify(cinema.Name)
	}

	if err := s.cinemas.Create(ctx, cinema); err != nil {
		return nil, err
	}

	s.logger.Info("cinema created",
		zap.Int64("cinema_id", cinema.ID),
		zap.String("slug", cinema.Slug),
	)

	return cinema, nil
}

// slugify lowercases and dashes a venue name. ASCII-ish on purpose:
// slugs are URL path segments, accents stay in Name.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
