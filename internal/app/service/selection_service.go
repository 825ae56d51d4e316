package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// FilmResolver resolves a TMDB id to a catalogued film, importing on
// first sight. Satisfied by FilmService.
type FilmResolver interface {
	Ensure(ctx context.Context, tmdbID int64) (*domain.Film, error)
}

// SelectionService drives the selection workflow from draft to approval.
type SelectionService struct {
	selections domain.SelectionRepository
	films      domain.FilmRepository
	interests  domain.InterestRepository
	activity   domain.ActivityRepository
	resolver   FilmResolver
	logger     *zap.Logger
}

// NewSelectionService creates a new SelectionService.
func NewSelectionService(
	selections domain.SelectionRepository,
	films domain.FilmRepository,
	interests domain.InterestRepository,
	activity domain.ActivityRepository,
	resolver FilmResolver,
	logger *zap.Logger,
) *SelectionService {
	return &SelectionService{
		selections: selections,
		films:      films,
		interests:  interests,
		activity:   activity,
		resolver:   resolver,
		logger:     logger,
	}
}

// Create opens a new draft selection with an optional initial batch of
// films.
func (s *SelectionService) Create(ctx context.Context, name string, filmIDs []int64) (*domain.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("selection name is required")
	}

	for _, id := range filmIDs {
		if id <= 0 {
			return nil, domain.Validationf("invalid film id %d", id)
		}
	}

	selection := &domain.Selection{Name: name, Status: domain.SelectionDraft}
	if err := s.selections.Create(ctx, selection, filmIDs); err != nil {
		return nil, err
	}

	s.logger.Info("selection created",
		zap.Int64("selection_id", selection.ID),
		zap.String("name", name),
		zap.Int("films", len(filmIDs)),
	)

	return s.selections.GetByID(ctx, selection.ID)
}

// List returns all selections, newest first, without their films.
func (s *SelectionService) List(ctx context.Context) ([]*domain.Selection, error) {
	return s.selections.List(ctx)
}

// Get retrieves a selection with its films.
func (s *SelectionService) Get(ctx context.Context, id int64) (*domain.Selection, error) {
	selection, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, domain.NotFoundf("selection %d", id)
	}

	return selection, nil
}

// AddFilm puts a film on a selection. The film is referenced either by
// its internal id or by a TMDB id, in which case it is imported on the
// fly. Adding the same pair twice updates category and comment in place.
// Approved selections are closed to changes.
func (s *SelectionService) AddFilm(ctx context.Context, selectionID, filmID, tmdbID int64, category, comment string) (*domain.SelectionFilm, error) {
	selection, err := s.Get(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection.Approved() {
		return nil, domain.Validationf("selection %d is approved, films are frozen", selectionID)
	}

	switch {
	case filmID > 0:
		film, err := s.films.GetByID(ctx, filmID)
		if err != nil {
			return nil, err
		}
		if film == nil {
			return nil, domain.NotFoundf("film %d", filmID)
		}
	case tmdbID > 0:
		film, err := s.resolver.Ensure(ctx, tmdbID)
		if err != nil {
			return nil, err
		}
		filmID = film.ID
	default:
		return nil, domain.Validationf("either film id or tmdb id is required")
	}

	sf := &domain.SelectionFilm{
		SelectionID: selectionID,
		FilmID:      filmID,
		Category:    category,
		Comment:     comment,
	}
	if err := s.selections.UpsertFilm(ctx, sf); err != nil {
		return nil, err
	}

	return sf, nil
}

// RemoveFilm drops a film from a selection. Approved selections are
// closed to changes.
func (s *SelectionService) RemoveFilm(ctx context.Context, selectionID, filmID int64) error {
	selection, err := s.Get(ctx, selectionID)
	if err != nil {
		return err
	}
	if selection.Approved() {
		return domain.Validationf("selection %d is approved, films are frozen", selectionID)
	}

	return s.selections.RemoveFilm(ctx, selectionID, filmID)
}

// OpenVote moves a draft selection into the voting phase.
func (s *SelectionService) OpenVote(ctx context.Context, id int64) (*domain.Selection, error) {
	selection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := selection.Transition(domain.SelectionVoteOpen); err != nil {
		return nil, err
	}

	if err := s.selections.UpdateStatus(ctx, id, domain.SelectionVoteOpen); err != nil {
		return nil, err
	}

	s.logger.Info("selection vote opened", zap.Int64("selection_id", id))

	return s.Get(ctx, id)
}

// Approve closes a selection: final scores are computed from the staff
// ballots plus the community signal, frozen on the pivot rows, and the
// status flips to programmation. All writes land in one transaction.
//
// The final score is votes*2 + popularity, where popularity is the
// weighted interest sum. Films without a ballot count zero votes but
// still receive their popularity component.
func (s *SelectionService) Approve(ctx context.Context, id int64, ballots []domain.Ballot, nbVotants int, userID string) (*domain.Selection, error) {
	selection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !selection.Status.CanTransition(domain.SelectionProgrammation) {
		return nil, domain.ErrInvalidTransition
	}

	if err := domain.ValidateBallots(ballots, nbVotants); err != nil {
		return nil, err
	}

	members := make(map[int64]struct{}, len(selection.Films))
	filmIDs := make([]int64, 0, len(selection.Films))
	for _, sf := range selection.Films {
		members[sf.FilmID] = struct{}{}
		filmIDs = append(filmIDs, sf.FilmID)
	}
	for _, b := range ballots {
		if _, ok := members[b.FilmID]; !ok {
			return nil, domain.Validationf("ballot for film %d outside selection %d", b.FilmID, id)
		}
	}

	grouped, err := s.interests.CountByValueForFilms(ctx, filmIDs)
	if err != nil {
		return nil, err
	}

	votesByFilm := make(map[int64]int, len(ballots))
	for _, b := range ballots {
		votesByFilm[b.FilmID] = b.Votes
	}

	scores := make(map[int64]int, len(filmIDs))
	for _, filmID := range filmIDs {
		stats := domain.NormalizeInterestStats(grouped[filmID])
		scores[filmID] = domain.ComputeFinalScore(votesByFilm[filmID], stats)
	}

	if err := s.selections.Approve(ctx, id, scores, domain.SelectionProgrammation); err != nil {
		return nil, err
	}

	entry := &domain.ActivityEntry{
		UserID:   userID,
		Action:   "selection.approve",
		TargetID: id,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Warn("activity append failed",
			zap.Int64("selection_id", id),
			zap.Error(err),
		)
	}

	s.logger.Info("selection approved",
		zap.Int64("selection_id", id),
		zap.Int("films", len(filmIDs)),
		zap.Int("ballots", len(ballots)),
	)

	return s.Get(ctx, id)
}

// Delete removes a selection and its pivot rows.
func (s *SelectionService) Delete(ctx context.Context, id int64) error {
	if err := s.selections.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("selection deleted", zap.Int64("selection_id", id))

	return nil
}
