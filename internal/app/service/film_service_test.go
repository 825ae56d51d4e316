package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

func newFilmFixture() (*fakeFilmRepo, *fakeInterestRepo, *fakeRatingRepo, *fakeCatalog, *FilmService) {
	films := newFakeFilmRepo()
	interests := newFakeInterestRepo()
	ratings := newFakeRatingRepo()
	catalog := newFakeCatalog()
	svc := NewFilmService(films, interests, ratings, catalog, zap.NewNop())

	return films, interests, ratings, catalog, svc
}

func TestFilmGet_ComputesAggregateScore(t *testing.T) {
	films, interests, ratings, _, svc := newFilmFixture()
	ctx := context.Background()

	film := films.add(&domain.Film{Title: "Film One"})

	// 2 MUST_SEE + 1 CURIOUS: popularity 7, average 7/3
	interests.vote("u1", film.ID, domain.InterestMustSee)
	interests.vote("u2", film.ID, domain.InterestMustSee)
	interests.vote("u3", film.ID, domain.InterestCurious)

	// Average rating 3
	require.NoError(t, ratings.Upsert(ctx, &domain.Rating{UserID: "u1", FilmID: film.ID, Note: 4}))
	require.NoError(t, ratings.Upsert(ctx, &domain.Rating{UserID: "u2", FilmID: film.ID, Note: 2}))

	detail, err := svc.Get(ctx, film.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.Voters)
	assert.InDelta(t, 7.0/3.0, detail.AverageInterest, 0.0001)
	assert.InDelta(t, 3.0, detail.AverageRating, 0.0001)
	// round(7/3*2 + 3) = round(7.666) = 8
	assert.Equal(t, 8, detail.AggregateScore)
}

func TestFilmGet_NotFound(t *testing.T) {
	_, _, _, _, svc := newFilmFixture()

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestFilmCreate_RequiresTitle(t *testing.T) {
	_, _, _, _, svc := newFilmFixture()

	_, err := svc.Create(context.Background(), &domain.Film{Title: "  "})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestFilmCreate_StripsTmdbID(t *testing.T) {
	_, _, _, _, svc := newFilmFixture()

	film, err := svc.Create(context.Background(), &domain.Film{Title: "Local Short", TmdbID: 603})
	require.NoError(t, err)
	assert.Zero(t, film.TmdbID, "Direct creation never claims a TMDB id")
	assert.NotZero(t, film.ID)
}

func TestFilmImport_FetchesAndStores(t *testing.T) {
	films, _, _, catalog, svc := newFilmFixture()
	ctx := context.Background()

	catalog.movies[603] = &domain.Film{TmdbID: 603, Title: "Matrix", Director: "Lana Wachowski"}

	film, err := svc.Import(ctx, 603)
	require.NoError(t, err)
	assert.NotZero(t, film.ID)
	assert.Equal(t, "Matrix", film.Title)

	stored, err := films.GetByTmdbID(ctx, 603)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, film.ID, stored.ID)
}

func TestFilmImport_RefreshesExisting(t *testing.T) {
	films, _, _, catalog, svc := newFilmFixture()
	ctx := context.Background()

	catalog.movies[603] = &domain.Film{TmdbID: 603, Title: "Matrix"}

	first, err := svc.Import(ctx, 603)
	require.NoError(t, err)

	catalog.movies[603].Title = "The Matrix"

	second, err := svc.Import(ctx, 603)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "Re-import refreshes, never duplicates")
	assert.Equal(t, "The Matrix", second.Title)

	_, total, err := films.List(ctx, domain.FilmFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestFilmImport_UnknownMovie(t *testing.T) {
	_, _, _, _, svc := newFilmFixture()

	_, err := svc.Import(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestFilmEnsure_SkipsFetchWhenCatalogued(t *testing.T) {
	films, _, _, catalog, svc := newFilmFixture()
	ctx := context.Background()

	films.add(&domain.Film{TmdbID: 603, Title: "Matrix"})

	film, err := svc.Ensure(ctx, 603)
	require.NoError(t, err)
	assert.Equal(t, "Matrix", film.Title)
	assert.Zero(t, catalog.calls, "Known TMDB id must not hit the API")
}

func TestRefreshUpcoming(t *testing.T) {
	films := newFakeFilmRepo()
	catalog := newFakeCatalog()
	svc := NewRefreshService(films, catalog, zap.NewNop())
	ctx := context.Background()

	future := time.Now().AddDate(0, 1, 0)
	past := time.Now().AddDate(0, -1, 0)

	upcoming := films.add(&domain.Film{TmdbID: 603, Title: "Old Title", ReleaseDate: &future})
	films.add(&domain.Film{TmdbID: 604, Title: "Released", ReleaseDate: &past})
	films.add(&domain.Film{Title: "Direct creation", ReleaseDate: &future})
	films.add(&domain.Film{TmdbID: 605, Title: "Broken upstream", ReleaseDate: &future})

	catalog.movies[603] = &domain.Film{TmdbID: 603, Title: "New Title", ReleaseDate: &future}
	// 605 missing upstream: counted as failed, run continues

	result, err := svc.RefreshUpcoming(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Candidates, "Released films are not candidates")
	assert.Equal(t, 1, result.Refreshed)
	assert.Equal(t, 1, result.Failed)

	refreshed, err := films.GetByID(ctx, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", refreshed.Title)
}
