// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"time"

	"github.com/eguilbert/cineapi/internal/domain"
)

// ListFilmsRequest represents the query parameters for browsing the catalog.
type ListFilmsRequest struct {
	Query    string `query:"q" json:"q" validate:"max=200"`
	Category string `query:"category" json:"category" validate:"max=50"`
	Page     int    `query:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToFilter converts ListFilmsRequest to a normalized domain.FilmFilter.
func (r *ListFilmsRequest) ToFilter() domain.FilmFilter {
	filter := domain.FilmFilter{
		Query:    r.Query,
		Category: r.Category,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	filter.Normalize()

	return filter
}

// FilmRequest represents the body for direct film creation and curator edits.
type FilmRequest struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Synopsis    string   `json:"synopsis" validate:"max=5000"`
	Genre       string   `json:"genre" validate:"max=100"`
	Duration    int      `json:"duration" validate:"omitempty,min=0"`
	Origin      string   `json:"origin" validate:"max=10"`
	Country     string   `json:"country" validate:"max=100"`
	Director    string   `json:"director" validate:"max=200"`
	Actors      []string `json:"actors" validate:"max=20"`
	Tags        []string `json:"tags" validate:"max=20"`
	PosterURL   string   `json:"poster_url" validate:"omitempty,url"`
	TrailerURL  string   `json:"trailer_url" validate:"omitempty,url"`
	Category    string   `json:"category" validate:"max=50"`
	ReleaseDate *string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToFilm converts FilmRequest to a domain.Film.
func (r *FilmRequest) ToFilm() *domain.Film {
	film := &domain.Film{
		Title:      r.Title,
		Synopsis:   r.Synopsis,
		Genre:      r.Genre,
		Duration:   r.Duration,
		Origin:     r.Origin,
		Country:    r.Country,
		Director:   r.Director,
		Actors:     r.Actors,
		Tags:       r.Tags,
		PosterURL:  r.PosterURL,
		TrailerURL: r.TrailerURL,
		Category:   r.Category,
	}

	if r.ReleaseDate != nil {
		// Format already checked by the datetime validation
		if t, err := time.Parse("2006-01-02", *r.ReleaseDate); err == nil {
			film.ReleaseDate = &t
		}
	}

	return film
}

// ImportFilmRequest represents the body for a TMDB import.
type ImportFilmRequest struct {
	TmdbID int64 `json:"tmdb_id" validate:"required,min=1"`
}

// CastInterestRequest represents the body for an interest vote.
type CastInterestRequest struct {
	Value string `json:"value" validate:"required,interest_value"`
}

// RateFilmRequest represents the body for a numeric rating.
type RateFilmRequest struct {
	Note    int    `json:"note" validate:"min=0,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// CreateSelectionRequest represents the body for opening a draft selection.
type CreateSelectionRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	FilmIDs []int64 `json:"film_ids" validate:"omitempty,dive,min=1"`
}

// AddSelectionFilmRequest represents the body for putting a film on a
// selection. Exactly one of film_id and tmdb_id should be set; the
// service rejects the neither case.
type AddSelectionFilmRequest struct {
	FilmID   int64  `json:"film_id" validate:"omitempty,min=1"`
	TmdbID   int64  `json:"tmdb_id" validate:"omitempty,min=1"`
	Category string `json:"category" validate:"max=50"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// BallotRequest is one film's staff vote tally.
type BallotRequest struct {
	FilmID int64 `json:"id" validate:"required,min=1"`
	Votes  int   `json:"votes" validate:"min=0"`
}

// ApproveSelectionRequest represents the body for closing a selection.
type ApproveSelectionRequest struct {
	Ballots   []BallotRequest `json:"ballots" validate:"omitempty,dive"`
	NbVotants int             `json:"nb_votants" validate:"omitempty,min=0"`
}

// ToBallots converts the request tallies to domain.Ballot values.
func (r *ApproveSelectionRequest) ToBallots() []domain.Ballot {
	ballots := make([]domain.Ballot, len(r.Ballots))
	for i, b := range r.Ballots {
		ballots[i] = domain.Ballot{FilmID: b.FilmID, Votes: b.Votes}
	}

	return ballots
}

// ProgrammingItemRequest is one per-cinema seance allocation.
type ProgrammingItemRequest struct {
	FilmID    int64  `json:"film_id" validate:"required,min=1"`
	CinemaID  int64  `json:"cinema_id" validate:"required,min=1"`
	Suggested int    `json:"suggested" validate:"min=0,max=9"`
	CapLabel  string `json:"cap_label" validate:"max=100"`
	Notes     string `json:"notes" validate:"max=1000"`
	CycleID   *int64 `json:"cycle_id" validate:"omitempty,min=1"`
}

// ProgrammingBatchRequest represents the body for a programming batch.
type ProgrammingBatchRequest struct {
	Items []ProgrammingItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ToItems converts the batch to domain.ProgrammingItem values bound to
// one selection.
func (r *ProgrammingBatchRequest) ToItems(selectionID int64) []domain.ProgrammingItem {
	items := make([]domain.ProgrammingItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.ProgrammingItem{
			SelectionID: selectionID,
			FilmID:      it.FilmID,
			CinemaID:    it.CinemaID,
			Suggested:   it.Suggested,
			CapLabel:    it.CapLabel,
			Notes:       it.Notes,
			CycleID:     it.CycleID,
		}
	}

	return items
}

// ProgrammingCommentRequest represents the body for an operator note.
type ProgrammingCommentRequest struct {
	CinemaID *int64 `json:"cinema_id" validate:"omitempty,min=1"`
	Body     string `json:"body" validate:"required,max=2000"`
}

// CreateCinemaRequest represents the body for adding a venue.
type CreateCinemaRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug" validate:"omitempty,max=200"`
}

// ListCollectionsRequest represents the query parameters for browsing
// film collections.
type ListCollectionsRequest struct {
	Type string `query:"type" json:"type" validate:"omitempty,oneof=CURATED DYNAMIC"`
}

// ResolveListRequest represents the query parameters for resolving one
// collection to its films.
type ResolveListRequest struct {
	Limit  int `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" json:"offset" validate:"omitempty,min=0"`
}
