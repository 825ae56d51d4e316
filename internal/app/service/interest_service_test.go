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

func newInterestFixture() (*fakeFilmRepo, *fakeInterestRepo, *fakeActivityRepo, *fakeCache, *InterestService) {
	films := newFakeFilmRepo()
	interests := newFakeInterestRepo()
	activity := &fakeActivityRepo{}
	cache := newFakeCache()
	svc := NewInterestService(interests, films, activity, cache, time.Minute, zap.NewNop())

	return films, interests, activity, cache, svc
}

func TestCast_RejectsUnknownValue(t *testing.T) {
	films, _, _, _, svc := newInterestFixture()
	film := films.add(&domain.Film{Title: "Film One"})

	_, err := svc.Cast(context.Background(), "u1", film.ID, "LOVE_IT")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCast_RejectsUnknownFilm(t *testing.T) {
	_, _, _, _, svc := newInterestFixture()

	_, err := svc.Cast(context.Background(), "u1", 999, domain.InterestCurious)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCast_OverwritesAndInvalidatesCache(t *testing.T) {
	films, _, activity, cache, svc := newInterestFixture()
	ctx := context.Background()
	film := films.add(&domain.Film{Title: "Film One"})

	_, err := svc.Cast(ctx, "u1", film.ID, domain.InterestCurious)
	require.NoError(t, err)

	// Warm the cache
	stats, err := svc.StatsForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Stats[domain.InterestCurious])
	assert.NotEmpty(t, cache.entries)

	// Re-vote overwrites and drops the cached aggregate
	_, err = svc.Cast(ctx, "u1", film.ID, domain.InterestMustSee)
	require.NoError(t, err)
	assert.Empty(t, cache.entries, "Cast must invalidate the stats cache")

	stats, err = svc.StatsForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Stats[domain.InterestCurious])
	assert.Equal(t, 1, stats.Stats[domain.InterestMustSee])
	assert.Equal(t, 1, stats.Voters, "Re-vote must not double count")

	assert.Len(t, activity.entries, 2)
	assert.Equal(t, "interest.cast", activity.entries[0].Action)
}

func TestStatsForFilm_ServedFromCache(t *testing.T) {
	films, interests, _, _, svc := newInterestFixture()
	ctx := context.Background()
	film := films.add(&domain.Film{Title: "Film One"})

	interests.vote("u1", film.ID, domain.InterestMustSee)

	first, err := svc.StatsForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, first.PopularityScore)

	// Mutate storage behind the cache; the cached aggregate still serves
	interests.vote("u2", film.ID, domain.InterestMustSee)

	second, err := svc.StatsForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, second.PopularityScore, "Warm cache serves the previous aggregate")
}

func TestStatsForFilms_MissingFilmsGetZeroStats(t *testing.T) {
	films, interests, _, _, svc := newInterestFixture()
	ctx := context.Background()
	film := films.add(&domain.Film{Title: "Film One"})
	silent := films.add(&domain.Film{Title: "Silent"})

	interests.vote("u1", film.ID, domain.InterestVeryInterested)

	results, err := svc.StatsForFilms(ctx, []int64{film.ID, silent.ID})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[film.ID].PopularityScore)
	assert.Equal(t, 0, results[silent.ID].PopularityScore)
	assert.Equal(t, 0, results[silent.ID].Voters)
	require.NotNil(t, results[silent.ID].Stats, "Stats are total even with no votes")
}
