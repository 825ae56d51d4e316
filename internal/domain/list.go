package domain

import "time"

// ListType distinguishes hand-curated collections from rule-based ones.
type ListType string

const (
	ListCurated ListType = "CURATED"
	ListDynamic ListType = "DYNAMIC"
)

// Dynamic list kinds, resolved at read time against the catalog.
const (
	DynamicReleasesThisMonth = "releases_this_month"
	DynamicRecentlyAdded     = "recently_added"
)

// List is a generic collection of films, independent of the Selection
// workflow (favorites, "this month's releases", thematic cycles).
type List struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Type        ListType `json:"type"`
	Kind        string   `json:"kind,omitempty"` // dynamic lists only
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ListFilm is the ranked pivot for curated lists.
type ListFilm struct {
	ID     int64 `json:"id"`
	ListID int64 `json:"list_id"`
	FilmID int64 `json:"film_id"`
	Rank   int   `json:"rank"`
}
