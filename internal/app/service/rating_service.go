package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// Accepted bounds for a rating note.
const (
	minRatingNote = 0
	maxRatingNote = 5
)

// RatingService handles per-user numeric film ratings.
type RatingService struct {
	ratings  domain.RatingRepository
	films    domain.FilmRepository
	activity domain.ActivityRepository
	logger   *zap.Logger
}

// NewRatingService creates a new RatingService.
func NewRatingService(
	ratings domain.RatingRepository,
	films domain.FilmRepository,
	activity domain.ActivityRepository,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		ratings:  ratings,
		films:    films,
		activity: activity,
		logger:   logger,
	}
}

// Rate records one member's note for a film, overwriting any previous
// note by the same member.
func (s *RatingService) Rate(ctx context.Context, userID string, filmID int64, note int, comment string) (*domain.Rating, error) {
	if note < minRatingNote || note > maxRatingNote {
		return nil, domain.Validationf("note %d out of [%d,%d]", note, minRatingNote, maxRatingNote)
	}

	film, err := s.films.GetByID(ctx, filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.NotFoundf("film %d", filmID)
	}

	rating := &domain.Rating{UserID: userID, FilmID: filmID, Note: note, Comment: comment}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	entry := &domain.ActivityEntry{
		UserID:   userID,
		Action:   "rating.cast",
		TargetID: filmID,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Warn("activity append failed",
			zap.String("user_id", userID),
			zap.Int64("film_id", filmID),
			zap.Error(err),
		)
	}

	return rating, nil
}

// AverageForFilm returns the mean note for a film, 0 when unrated.
func (s *RatingService) AverageForFilm(ctx context.Context, filmID int64) (float64, error) {
	return s.ratings.AverageForFilm(ctx, filmID)
}
