package domain

import (
	"context"
	"time"
)

// FilmRepository defines catalog persistence operations.
// Implementation: internal/infra/postgres/film_repository.go
type FilmRepository interface {
	List(ctx context.Context, filter FilmFilter) ([]*Film, int64, error)
	GetByID(ctx context.Context, id int64) (*Film, error)
	GetByTmdbID(ctx context.Context, tmdbID int64) (*Film, error)

	// Upsert creates or updates a film keyed by its TMDB id. Films
	// without a TMDB id (direct creation) are inserted.
	Upsert(ctx context.Context, film *Film) error
	Update(ctx context.Context, film *Film) error

	// ListUpcoming returns films whose release date is after now,
	// for the periodic metadata refresh.
	ListUpcoming(ctx context.Context, now time.Time) ([]*Film, error)

	// ListByKind resolves a dynamic list kind to films.
	ListByKind(ctx context.Context, kind string, limit int) ([]*Film, error)

	Count(ctx context.Context) (int64, error)
}

// InterestRepository persists per-user interest votes and aggregates
// them. Grouping/counting is delegated to the store (GROUP BY).
type InterestRepository interface {
	// Upsert applies last-write-wins on the (user, film) pair.
	Upsert(ctx context.Context, interest *Interest) error

	// CountByValue returns raw per-value tallies for one film.
	CountByValue(ctx context.Context, filmID int64) (RawInterestCounts, error)

	// CountByValueForFilms returns raw tallies for a set of films.
	// Films with no votes are absent from the result.
	CountByValueForFilms(ctx context.Context, filmIDs []int64) (map[int64]RawInterestCounts, error)

	ListByUser(ctx context.Context, userID string) ([]*Interest, error)
	Count(ctx context.Context) (int64, error)
}

// RatingRepository persists per-user numeric ratings.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *Rating) error
	AverageForFilm(ctx context.Context, filmID int64) (float64, error)
}

// SelectionRepository persists the selection workflow state.
type SelectionRepository interface {
	Create(ctx context.Context, selection *Selection, filmIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Selection, error)
	List(ctx context.Context) ([]*Selection, error)
	Delete(ctx context.Context, id int64) error

	// UpsertFilm adds or updates a pivot row keyed (selectionID, filmID).
	UpsertFilm(ctx context.Context, sf *SelectionFilm) error
	RemoveFilm(ctx context.Context, selectionID, filmID int64) error

	UpdateStatus(ctx context.Context, id int64, status SelectionStatus) error

	// Approve atomically writes score and selected=true on every pivot
	// row in scores and flips the selection status. All-or-nothing: a
	// missing pivot row fails the whole batch.
	Approve(ctx context.Context, selectionID int64, scores map[int64]int, status SelectionStatus) error

	CountByStatus(ctx context.Context) (map[SelectionStatus]int64, error)
}

// ProgrammingRepository persists per-cinema seance allocations.
type ProgrammingRepository interface {
	// UpsertBatch writes all items in one transaction, keyed
	// (selectionID, filmID, cinemaID).
	UpsertBatch(ctx context.Context, items []ProgrammingItem) error
	ListBySelection(ctx context.Context, selectionID int64) ([]ProgrammingItem, error)

	AddComment(ctx context.Context, comment *ProgrammingComment) error
	ListComments(ctx context.Context, selectionID int64, filmID int64) ([]ProgrammingComment, error)
}

// CinemaRepository persists venues.
type CinemaRepository interface {
	List(ctx context.Context, query string) ([]*Cinema, error)
	Create(ctx context.Context, cinema *Cinema) error
}

// ListRepository persists curated collections.
type ListRepository interface {
	List(ctx context.Context, listType ListType) ([]*List, error)
	GetBySlug(ctx context.Context, slug string) (*List, error)
	CuratedItems(ctx context.Context, listID int64, limit, offset int) ([]*Film, error)
}

// ActivityRepository appends audit-trail entries.
type ActivityRepository interface {
	Append(ctx context.Context, entry *ActivityEntry) error
}

// Catalog resolves an external TMDB id to a Film record.
// Implementation: internal/infra/tmdb/client.go
type Catalog interface {
	// FetchMovie retrieves full metadata for one movie. The returned
	// Film has no internal ID.
	FetchMovie(ctx context.Context, tmdbID int64) (*Film, error)

	// HealthCheck verifies the metadata API is reachable.
	HealthCheck(ctx context.Context) error
}

// Cache defines caching operations for derived read models.
// Implementation: internal/infra/redis/cache.go
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Principal is the resolved identity attached to authenticated requests.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Admin reports whether the principal may run curation operations.
func (p *Principal) Admin() bool {
	return p != nil && p.Role == "admin"
}

// SessionStore resolves an opaque bearer token to a principal. Exactly
// one identity strategy sits behind this interface; session issuance is
// owned by the identity collaborator.
// Implementation: internal/infra/redis/session.go
type SessionStore interface {
	// Resolve returns nil (no error) for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (*Principal, error)
}
