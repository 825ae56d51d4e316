// Package service provides application use cases.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// FilmService handles catalog operations: listing, TMDB import, curator
// edits.
type FilmService struct {
	films     domain.FilmRepository
	interests domain.InterestRepository
	ratings   domain.RatingRepository
	catalog   domain.Catalog
	logger    *zap.Logger
}

// NewFilmService creates a new FilmService.
func NewFilmService(
	films domain.FilmRepository,
	interests domain.InterestRepository,
	ratings domain.RatingRepository,
	catalog domain.Catalog,
	logger *zap.Logger,
) *FilmService {
	return &FilmService{
		films:     films,
		interests: interests,
		ratings:   ratings,
		catalog:   catalog,
		logger:    logger,
	}
}

// FilmDetail is a film with its live computed scores.
type FilmDetail struct {
	Film            *domain.Film         `json:"film"`
	Stats           domain.InterestStats `json:"stats"`
	Voters          int                  `json:"voters"`
	AverageInterest float64              `json:"average_interest"`
	AverageRating   float64              `json:"average_rating"`
	AggregateScore  int                  `json:"aggregate_score"`
}

// List finds films matching the filter.
func (s *FilmService) List(ctx context.Context, filter domain.FilmFilter) ([]*domain.Film, int64, error) {
	s.logger.Debug("listing films",
		zap.String("query", filter.Query),
		zap.String("category", filter.Category),
		zap.Int("page", filter.Page),
	)

	return s.films.List(ctx, filter)
}

// Get retrieves one film with its interest stats and the aggregate score
// computed at read time. Scores here are never persisted; only approval
// freezes a score, and that lives on the selection pivot.
func (s *FilmService) Get(ctx context.Context, id int64) (*FilmDetail, error) {
	film, err := s.films.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.NotFoundf("film %d", id)
	}

	raw, err := s.interests.CountByValue(ctx, id)
	if err != nil {
		return nil, err
	}

	avgRating, err := s.ratings.AverageForFilm(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := domain.NormalizeInterestStats(raw)

	return &FilmDetail{
		Film:            film,
		Stats:           stats,
		Voters:          domain.InterestCount(stats),
		AverageInterest: domain.ComputeAverageInterest(stats),
		AverageRating:   avgRating,
		AggregateScore:  domain.ComputeAggregateScore(stats, avgRating),
	}, nil
}

// Create adds a film directly, without TMDB. Title is the only required
// field.
func (s *FilmService) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	film.Title = strings.TrimSpace(film.Title)
	if film.Title == "" {
		return nil, domain.Validationf("film title is required")
	}

	film.ID = 0
	film.TmdbID = 0
	if err := s.films.Upsert(ctx, film); err != nil {
		return nil, err
	}

	s.logger.Info("film created",
		zap.Int64("film_id", film.ID),
		zap.String("title", film.Title),
	)

	return film, nil
}

// Update persists curator edits on an existing film.
func (s *FilmService) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if film.ID <= 0 {
		return nil, domain.Validationf("film id is required")
	}
	film.Title = strings.TrimSpace(film.Title)
	if film.Title == "" {
		return nil, domain.Validationf("film title is required")
	}

	if err := s.films.Update(ctx, film); err != nil {
		return nil, err
	}

	return s.films.GetByID(ctx, film.ID)
}

// Import fetches a movie from TMDB and upserts it into the catalog.
// Importing an already known TMDB id refreshes its metadata instead of
// duplicating the film.
func (s *FilmService) Import(ctx context.Context, tmdbID int64) (*domain.Film, error) {
	if tmdbID <= 0 {
		return nil, domain.Validationf("invalid tmdb id %d", tmdbID)
	}

	film, err := s.catalog.FetchMovie(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	if err := s.films.Upsert(ctx, film); err != nil {
		return nil, err
	}

	s.logger.Info("film imported",
		zap.Int64("film_id", film.ID),
		zap.Int64("tmdb_id", tmdbID),
		zap.String("title", film.Title),
	)

	return film, nil
}

// Ensure resolves a TMDB id to a catalogued film, importing it on first
// sight. Used when a film is added to a selection straight from a TMDB
// search result.
func (s *FilmService) Ensure(ctx context.Context, tmdbID int64) (*domain.Film, error) {
	film, err := s.films.GetByTmdbID(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if film != nil {
		return film, nil
	}

	return s.Import(ctx, tmdbID)
}
