package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/infra/postgres/migrations"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connected GORM DB
//
// Prerequisites:
//   - Docker must be running
//   - Run: docker-compose up postgres
//
// OR
//   - Skip tests with: go test -short
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("testdb"),
		postgresContainer.WithUsername("testuser"),
		postgresContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf(`Failed to start PostgreSQL container: %v

Docker Prerequisites:
1. Ensure Docker is running
2. OR use existing postgres: docker-compose up postgres
3. OR skip integration tests: go test -short

`, err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger:         nil, // Silent logger for tests
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = migrations.Run(db)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

// createTestFilm is a factory function for catalog rows.
func createTestFilm(tmdbID int64, title string) *domain.Film {
	release := time.Now().UTC().AddDate(0, 1, 0)
	return &domain.Film{
		TmdbID:      tmdbID,
		Title:       title,
		Synopsis:    "Synopsis for " + title,
		Genre:       "Drame",
		Duration:    105,
		Origin:      "FR",
		Country:     "France",
		Director:    "Some Director",
		Actors:      []string{"Actor One", "Actor Two"},
		Tags:        []string{"vo"},
		Category:    "DECOUVERTE",
		Rating:      3,
		ReleaseDate: &release,
	}
}

// seedFilm inserts a film and fails the test on error.
func seedFilm(t *testing.T, db *gorm.DB, tmdbID int64, title string) *domain.Film {
	t.Helper()

	film := createTestFilm(tmdbID, title)
	require.NoError(t, NewFilmRepository(db).Upsert(context.Background(), film))

	return film
}

// seedCinema inserts a venue and fails the test on error.
func seedCinema(t *testing.T, db *gorm.DB, name, slug string) *domain.Cinema {
	t.Helper()

	cinema := &domain.Cinema{Name: name, Slug: slug}
	require.NoError(t, NewCinemaRepository(db).Create(context.Background(), cinema))

	return cinema
}
