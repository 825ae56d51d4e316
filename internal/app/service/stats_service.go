package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

const overviewCacheKey = "stats:overview"

// StatsService aggregates the counters shown on the staff dashboard.
type StatsService struct {
	films      domain.FilmRepository
	interests  domain.InterestRepository
	selections domain.SelectionRepository
	cache      domain.Cache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewStatsService creates a new StatsService. cache may be nil.
func NewStatsService(
	films domain.FilmRepository,
	interests domain.InterestRepository,
	selections domain.SelectionRepository,
	cache domain.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		films:      films,
		interests:  interests,
		selections: selections,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Overview holds the dashboard counters.
type Overview struct {
	Films              int64 `json:"films"`
	Interests          int64 `json:"interests"`
	Selections         int64 `json:"selections"`
	DraftSelections    int64 `json:"draft_selections"`
	VoteOpenSelections int64 `json:"vote_open_selections"`
	ApprovedSelections int64 `json:"approved_selections"`
}

// Overview returns the dashboard counters, cached briefly to keep the
// dashboard cheap under refresh-happy staff.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, overviewCacheKey); err == nil && data != nil {
			var cached Overview
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	films, err := s.films.Count(ctx)
	if err != nil {
		return nil, err
	}

	interests, err := s.interests.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.selections.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Films:              films,
		Interests:          interests,
		DraftSelections:    byStatus[domain.SelectionDraft],
		VoteOpenSelections: byStatus[domain.SelectionVoteOpen],
		ApprovedSelections: byStatus[domain.SelectionProgrammation],
	}
	overview.Selections = overview.DraftSelections + overview.VoteOpenSelections + overview.ApprovedSelections

	if s.cache != nil {
		if data, err := json.Marshal(overview); err == nil {
			if err := s.cache.Set(ctx, overviewCacheKey, data, s.ttl); err != nil {
				s.logger.Warn("overview cache write failed", zap.Error(err))
			}
		}
	}

	return overview, nil
}
