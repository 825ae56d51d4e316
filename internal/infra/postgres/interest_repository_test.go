package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eguilbert/cineapi/internal/domain"
)

// TestInterestUpsert_LastWriteWins verifies one row per (user, film).
func TestInterestUpsert_LastWriteWins(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewInterestRepository(db)
	ctx := context.Background()

	film := seedFilm(t, db, 100, "Film One")

	first := &domain.Interest{UserID: "u1", FilmID: film.ID, Value: domain.InterestCurious}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.Interest{UserID: "u1", FilmID: film.ID, Value: domain.InterestMustSee}
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&InterestModel{}).
		Where("user_id = ? AND film_id = ?", "u1", film.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "Should have exactly 1 row")

	var model InterestModel
	require.NoError(t, db.Where("user_id = ? AND film_id = ?", "u1", film.ID).First(&model).Error)
	assert.Equal(t, string(domain.InterestMustSee), model.Value)
}

// TestInterestCountByValue verifies the GROUP BY tallies.
func TestInterestCountByValue(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewInterestRepository(db)
	ctx := context.Background()

	film := seedFilm(t, db, 100, "Film One")
	other := seedFilm(t, db, 101, "Film Two")

	votes := []struct {
		user  string
		film  int64
		value domain.InterestValue
	}{
		{"u1", film.ID, domain.InterestMustSee},
		{"u2", film.ID, domain.InterestMustSee},
		{"u3", film.ID, domain.InterestCurious},
		{"u4", film.ID, domain.InterestNotInterested},
		{"u1", other.ID, domain.InterestVeryInterested},
	}
	for _, v := range votes {
		require.NoError(t, repo.Upsert(ctx, &domain.Interest{UserID: v.user, FilmID: v.film, Value: v.value}))
	}

	counts, err := repo.CountByValue(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(2), counts[string(domain.InterestMustSee)])
	assert.Equal(t, float64(1), counts[string(domain.InterestCurious)])
	assert.Equal(t, float64(1), counts[string(domain.InterestNotInterested)])
	assert.NotContains(t, counts, string(domain.InterestVeryInterested), "Other film's vote must not leak")

	grouped, err := repo.CountByValueForFilms(ctx, []int64{film.ID, other.ID})
	require.NoError(t, err)
	require.Len(t, grouped, 2)
	assert.Equal(t, float64(1), grouped[other.ID][string(domain.InterestVeryInterested)])
}

// TestInterestCountByValueForFilms_Empty verifies the no-ids fast path.
func TestInterestCountByValueForFilms_Empty(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewInterestRepository(db)

	grouped, err := repo.CountByValueForFilms(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, grouped)
}

// TestRatingAverageForFilm verifies AVG and the unrated zero case.
func TestRatingAverageForFilm(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRatingRepository(db)
	ctx := context.Background()

	film := seedFilm(t, db, 100, "Film One")

	avg, err := repo.AverageForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), avg, "Unrated film averages to 0")

	require.NoError(t, repo.Upsert(ctx, &domain.Rating{UserID: "u1", FilmID: film.ID, Note: 4}))
	require.NoError(t, repo.Upsert(ctx, &domain.Rating{UserID: "u2", FilmID: film.ID, Note: 2}))

	avg, err = repo.AverageForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 0.0001)

	// Re-rating replaces, not accumulates
	require.NoError(t, repo.Upsert(ctx, &domain.Rating{UserID: "u2", FilmID: film.ID, Note: 5}))
	avg, err = repo.AverageForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.0001)
}
