package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// InterestService handles the community interest votes and their cached
// per-film aggregates.
type InterestService struct {
	interests domain.InterestRepository
	films     domain.FilmRepository
	activity  domain.ActivityRepository
	cache     domain.Cache
	statsTTL  time.Duration
	logger    *zap.Logger
}

// NewInterestService creates a new InterestService. cache may be nil, in
// which case stats are always computed from the database.
func NewInterestService(
	interests domain.InterestRepository,
	films domain.FilmRepository,
	activity domain.ActivityRepository,
	cache domain.Cache,
	statsTTL time.Duration,
	logger *zap.Logger,
) *InterestService {
	return &InterestService{
		interests: interests,
		films:     films,
		activity:  activity,
		cache:     cache,
		statsTTL:  statsTTL,
		logger:    logger,
	}
}

// FilmInterestStats is the aggregated community signal for one film.
type FilmInterestStats struct {
	FilmID          int64                `json:"film_id"`
	Stats           domain.InterestStats `json:"stats"`
	Voters          int                  `json:"voters"`
	PopularityScore int                  `json:"popularity_score"`
	AverageInterest float64              `json:"average_interest"`
}

// Cast records one member's interest in a film, overwriting any previous
// vote by the same member.
func (s *InterestService) Cast(ctx context.Context, userID string, filmID int64, value domain.InterestValue) (*domain.Interest, error) {
	if !value.Valid() {
		return nil, domain.Validationf("unknown interest value %q", value)
	}

	film, err := s.films.GetByID(ctx, filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.NotFoundf("film %d", filmID)
	}

	interest := &domain.Interest{UserID: userID, FilmID: filmID, Value: value}
	if err := s.interests.Upsert(ctx, interest); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, filmID)

	// Audit trail failure must not lose the vote
	entry := &domain.ActivityEntry{
		UserID:   userID,
		Action:   "interest.cast",
		TargetID: filmID,
		Context:  string(value),
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Warn("activity append failed",
			zap.String("user_id", userID),
			zap.Int64("film_id", filmID),
			zap.Error(err),
		)
	}

	s.logger.Debug("interest cast",
		zap.String("user_id", userID),
		zap.Int64("film_id", filmID),
		zap.String("value", string(value)),
	)

	return interest, nil
}

// StatsForFilm returns the aggregated interest signal for one film,
// served from cache when warm.
func (s *InterestService) StatsForFilm(ctx context.Context, filmID int64) (*FilmInterestStats, error) {
	key := statsKey(filmID)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var cached FilmInterestStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt entry, fall through to recompute
		}
	}

	raw, err := s.interests.CountByValue(ctx, filmID)
	if err != nil {
		return nil, err
	}

	result := buildStats(filmID, raw)

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, data, s.statsTTL); err != nil {
				s.logger.Warn("stats cache write failed", zap.Int64("film_id", filmID), zap.Error(err))
			}
		}
	}

	return result, nil
}

// StatsForFilms returns the aggregated signal for a set of films in one
// round trip. Bypasses the cache: batch reads feed score computations
// that need fresh tallies.
func (s *InterestService) StatsForFilms(ctx context.Context, filmIDs []int64) (map[int64]*FilmInterestStats, error) {
	grouped, err := s.interests.CountByValueForFilms(ctx, filmIDs)
	if err != nil {
		return nil, err
	}

	results := make(map[int64]*FilmInterestStats, len(filmIDs))
	for _, id := range filmIDs {
		results[id] = buildStats(id, grouped[id])
	}

	return results, nil
}

// MyInterests lists a member's votes with the films preloaded.
func (s *InterestService) MyInterests(ctx context.Context, userID string) ([]*domain.Interest, error) {
	return s.interests.ListByUser(ctx, userID)
}

// invalidateStats drops the cached aggregate after a vote.
func (s *InterestService) invalidateStats(ctx context.Context, filmID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsKey(filmID)); err != nil {
		s.logger.Warn("stats cache invalidation failed",
			zap.Int64("film_id", filmID),
			zap.Error(err),
		)
	}
}

func buildStats(filmID int64, raw domain.RawInterestCounts) *FilmInterestStats {
	stats := domain.NormalizeInterestStats(raw)

	return &FilmInterestStats{
		FilmID:          filmID,
		Stats:           stats,
		Voters:          domain.InterestCount(stats),
		PopularityScore: domain.ComputePopularityScore(stats),
		AverageInterest: domain.ComputeAverageInterest(stats),
	}
}

func statsKey(filmID int64) string {
	return fmt.Sprintf("stats:film:%d", filmID)
}
