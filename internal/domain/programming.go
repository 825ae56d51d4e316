package domain

import "time"

// Bounds for the suggested seance count per (film, cinema).
const (
	MinSuggestedSeances = 0
	MaxSuggestedSeances = 9
)

// ProgrammingItem is one per-cinema allocation for a film of an approved
// selection. Unique per (selectionID, filmID, cinemaID); re-submission
// overwrites the triple without touching other triples.
type ProgrammingItem struct {
	ID          int64  `json:"id"`
	SelectionID int64  `json:"selection_id"`
	FilmID      int64  `json:"film_id"`
	CinemaID    int64  `json:"cinema_id"`
	Suggested   int    `json:"suggested"`
	CapLabel    string `json:"cap_label,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CycleID     *int64 `json:"cycle_id,omitempty"`
}

// Validate checks a single allocation.
func (i *ProgrammingItem) Validate() error {
	if i.FilmID <= 0 {
		return Validationf("programming item has invalid film id %d", i.FilmID)
	}
	if i.CinemaID <= 0 {
		return Validationf("programming item has invalid cinema id %d", i.CinemaID)
	}
	if i.Suggested < MinSuggestedSeances || i.Suggested > MaxSuggestedSeances {
		return Validationf("film %d cinema %d: suggested seances %d out of [%d,%d]",
			i.FilmID, i.CinemaID, i.Suggested, MinSuggestedSeances, MaxSuggestedSeances)
	}

	return nil
}

// ValidateProgramming rejects the whole batch before any write when any
// item is out of range (fail-fast, no partial application).
func ValidateProgramming(items []ProgrammingItem) error {
	if len(items) == 0 {
		return Validationf("programming batch is empty")
	}
	for idx := range items {
		if err := items[idx].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ProgrammingComment is a free-text operator note attached to a
// (selection, film, optional cinema) triple. Append-only.
type ProgrammingComment struct {
	ID          int64     `json:"id"`
	SelectionID int64     `json:"selection_id"`
	FilmID      int64     `json:"film_id"`
	CinemaID    *int64    `json:"cinema_id,omitempty"`
	UserID      string    `json:"user_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}
