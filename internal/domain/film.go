package domain

import "time"

// Film is a catalogued movie. Created by TMDB import or direct creation,
// updated by refresh jobs or curator edits, never hard-deleted in the
// normal flow.
type Film struct {
	ID     int64 `json:"id"`
	TmdbID int64 `json:"tmdb_id,omitempty"`

	Title    string   `json:"title"`
	Synopsis string   `json:"synopsis,omitempty"`
	Genre    string   `json:"genre,omitempty"`
	Duration int      `json:"duration,omitempty"` // minutes
	Origin   string   `json:"origin,omitempty"`
	Country  string   `json:"country,omitempty"` // first production country
	Director string   `json:"director,omitempty"`
	Actors   []string `json:"actors,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	PosterURL  string `json:"poster_url,omitempty"`
	TrailerURL string `json:"trailer_url,omitempty"`

	Category string `json:"category,omitempty"`
	// Rating is the static curator score (TMDB vote average at import,
	// possibly overridden by staff). Not a user rating.
	Rating int `json:"rating,omitempty"`

	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Upcoming reports whether the film's release date is in the future.
// Films without a release date are never upcoming.
func (f *Film) Upcoming(now time.Time) bool {
	return f.ReleaseDate != nil && f.ReleaseDate.After(now)
}

// FilmFilter holds list/filter parameters for catalog queries.
type FilmFilter struct {
	Query    string // title substring, case-insensitive
	Category string
	Page     int
	PageSize int
}

// Normalize clamps pagination to acceptable bounds.
func (f *FilmFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Offset calculates the database offset for pagination.
func (f *FilmFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Cinema is one of the association's venues.
type Cinema struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ActivityEntry records one user action for the audit trail.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	TargetID  int64     `json:"target_id,omitempty"`
	Context   string    `json:"context,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
