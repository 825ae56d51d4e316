package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

type selectionFixture struct {
	films      *fakeFilmRepo
	interests  *fakeInterestRepo
	selections *fakeSelectionRepo
	activity   *fakeActivityRepo
	catalog    *fakeCatalog
	filmSvc    *FilmService
	svc        *SelectionService
}

func newSelectionFixture() *selectionFixture {
	films := newFakeFilmRepo()
	interests := newFakeInterestRepo()
	selections := newFakeSelectionRepo()
	activity := &fakeActivityRepo{}
	catalog := newFakeCatalog()
	logger := zap.NewNop()

	filmSvc := NewFilmService(films, interests, newFakeRatingRepo(), catalog, logger)

	return &selectionFixture{
		films:      films,
		interests:  interests,
		selections: selections,
		activity:   activity,
		catalog:    catalog,
		filmSvc:    filmSvc,
		svc:        NewSelectionService(selections, films, interests, activity, filmSvc, logger),
	}
}

func TestSelectionCreate_RequiresName(t *testing.T) {
	fx := newSelectionFixture()

	_, err := fx.svc.Create(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectionApprove_FinalScores(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film1 := fx.films.add(&domain.Film{Title: "Film One"})
	film2 := fx.films.add(&domain.Film{Title: "Film Two"})

	selection, err := fx.svc.Create(ctx, "Novembre", []int64{film1.ID, film2.ID})
	require.NoError(t, err)

	_, err = fx.svc.OpenVote(ctx, selection.ID)
	require.NoError(t, err)

	// Community signal: film1 has two MUST_SEE (popularity 6), film2 has
	// three VERY_INTERESTED (popularity 6)
	fx.interests.vote("u1", film1.ID, domain.InterestMustSee)
	fx.interests.vote("u2", film1.ID, domain.InterestMustSee)
	fx.interests.vote("u1", film2.ID, domain.InterestVeryInterested)
	fx.interests.vote("u2", film2.ID, domain.InterestVeryInterested)
	fx.interests.vote("u3", film2.ID, domain.InterestVeryInterested)

	// Staff ballot: 5 votes on film1, none on film2
	ballots := []domain.Ballot{{FilmID: film1.ID, Votes: 5}}

	approved, err := fx.svc.Approve(ctx, selection.ID, ballots, 8, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.SelectionProgrammation, approved.Status)

	require.Len(t, approved.Films, 2)
	scoreByFilm := map[int64]domain.SelectionFilm{}
	for _, sf := range approved.Films {
		scoreByFilm[sf.FilmID] = sf
	}

	// votes*2 + popularity: 5*2 + 6 = 16
	assert.Equal(t, 16, scoreByFilm[film1.ID].Score)
	assert.True(t, scoreByFilm[film1.ID].Selected)

	// No ballot means zero votes, popularity still counts: 0*2 + 6 = 6
	assert.Equal(t, 6, scoreByFilm[film2.ID].Score)
	assert.True(t, scoreByFilm[film2.ID].Selected)
}

func TestSelectionApprove_BallotOverVoterBound(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film := fx.films.add(&domain.Film{Title: "Film One"})
	selection, err := fx.svc.Create(ctx, "Test", []int64{film.ID})
	require.NoError(t, err)

	// 6 votes out of 5 voters is a client error, never clamped
	ballots := []domain.Ballot{{FilmID: film.ID, Votes: 6}}
	_, err = fx.svc.Approve(ctx, selection.ID, ballots, 5, "admin")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	loaded, err := fx.svc.Get(ctx, selection.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SelectionDraft, loaded.Status, "Rejected approval leaves status alone")
}

func TestSelectionApprove_BallotAtVoterBound(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film := fx.films.add(&domain.Film{Title: "Film One"})
	selection, err := fx.svc.Create(ctx, "Test", []int64{film.ID})
	require.NoError(t, err)

	// votes == nbVotants is legal
	ballots := []domain.Ballot{{FilmID: film.ID, Votes: 5}}
	approved, err := fx.svc.Approve(ctx, selection.ID, ballots, 5, "admin")
	require.NoError(t, err)
	assert.Equal(t, 10, approved.Films[0].Score)
}

func TestSelectionApprove_Twice(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film := fx.films.add(&domain.Film{Title: "Film One"})
	selection, err := fx.svc.Create(ctx, "Test", []int64{film.ID})
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, selection.ID, nil, 0, "admin")
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, selection.ID, nil, 0, "admin")
	require.ErrorIs(t, err, domain.ErrInvalidTransition, "programmation is terminal")
}

func TestSelectionApprove_BallotOutsideSelection(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film := fx.films.add(&domain.Film{Title: "Film One"})
	stranger := fx.films.add(&domain.Film{Title: "Stranger"})

	selection, err := fx.svc.Create(ctx, "Test", []int64{film.ID})
	require.NoError(t, err)

	ballots := []domain.Ballot{{FilmID: stranger.ID, Votes: 1}}
	_, err = fx.svc.Approve(ctx, selection.ID, ballots, 0, "admin")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectionAddFilm_ImportsFromTmdb(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	fx.catalog.movies[603] = &domain.Film{TmdbID: 603, Title: "Matrix"}

	selection, err := fx.svc.Create(ctx, "Test", nil)
	require.NoError(t, err)

	sf, err := fx.svc.AddFilm(ctx, selection.ID, 0, 603, "DECOUVERTE", "")
	require.NoError(t, err)
	assert.NotZero(t, sf.FilmID)
	assert.Equal(t, 1, fx.catalog.calls)

	// Adding the same TMDB film again reuses the catalogued copy
	sf2, err := fx.svc.AddFilm(ctx, selection.ID, 0, 603, "PATRIMOINE", "")
	require.NoError(t, err)
	assert.Equal(t, sf.FilmID, sf2.FilmID)
	assert.Equal(t, 1, fx.catalog.calls, "Second add must not re-import")

	loaded, err := fx.svc.Get(ctx, selection.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Films, 1, "Same pair converges to one pivot row")
	assert.Equal(t, "PATRIMOINE", loaded.Films[0].Category)
}

func TestSelectionAddFilm_ApprovedIsFrozen(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film := fx.films.add(&domain.Film{Title: "Film One"})
	other := fx.films.add(&domain.Film{Title: "Film Two"})

	selection, err := fx.svc.Create(ctx, "Test", []int64{film.ID})
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, selection.ID, nil, 0, "admin")
	require.NoError(t, err)

	_, err = fx.svc.AddFilm(ctx, selection.ID, other.ID, 0, "", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	err = fx.svc.RemoveFilm(ctx, selection.ID, film.ID)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectionOpenVote_OnlyFromDraft(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	film := fx.films.add(&domain.Film{Title: "Film One"})
	selection, err := fx.svc.Create(ctx, "Test", []int64{film.ID})
	require.NoError(t, err)

	opened, err := fx.svc.OpenVote(ctx, selection.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SelectionVoteOpen, opened.Status)

	_, err = fx.svc.OpenVote(ctx, selection.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSelectionGet_NotFound(t *testing.T) {
	fx := newSelectionFixture()

	_, err := fx.svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
