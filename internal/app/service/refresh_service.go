package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// RefreshService re-imports metadata for upcoming films. Release dates,
// posters and trailers keep changing on TMDB until a film is out, so the
// scheduler runs this periodically.
type RefreshService struct {
	films   domain.FilmRepository
	catalog domain.Catalog
	logger  *zap.Logger
}

// NewRefreshService creates a new RefreshService.
func NewRefreshService(films domain.FilmRepository, catalog domain.Catalog, logger *zap.Logger) *RefreshService {
	return &RefreshService{
		films:   films,
		catalog: catalog,
		logger:  logger,
	}
}

// RefreshResult holds the outcome of one refresh run.
type RefreshResult struct {
	Candidates int
	Refreshed  int
	Failed     int
	Duration   time.Duration
}

// RefreshUpcoming re-fetches every upcoming imported film. Failures on
// individual films are logged and counted, never fatal to the run; the
// next tick retries them anyway.
func (s *RefreshService) RefreshUpcoming(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()

	films, err := s.films.ListUpcoming(ctx, start)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{Candidates: len(films)}

	for _, film := range films {
		if film.TmdbID == 0 {
			// Direct creations have no upstream to refresh from
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}

		fresh, err := s.catalog.FetchMovie(ctx, film.TmdbID)
		if err != nil {
			result.Failed++
			s.logger.Warn("refresh fetch failed",
				zap.Int64("film_id", film.ID),
				zap.Int64("tmdb_id", film.TmdbID),
				zap.Error(err),
			)
			continue
		}

		if err := s.films.Upsert(ctx, fresh); err != nil {
			result.Failed++
			s.logger.Warn("refresh upsert failed",
				zap.Int64("film_id", film.ID),
				zap.Error(err),
			)
			continue
		}

		result.Refreshed++
	}

	result.Duration = time.Since(start)

	s.logger.Info("upcoming refresh completed",
		zap.Int("candidates", result.Candidates),
		zap.Int("refreshed", result.Refreshed),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}
