package domain

import "time"

// SelectionStatus is the explicit workflow state of a Selection.
//
//	draft → vote_open → programmation
//
// programmation is terminal with respect to scoring: once a selection is
// approved its SelectionFilm scores are frozen.
type SelectionStatus string

const (
	SelectionDraft         SelectionStatus = "draft"
	SelectionVoteOpen      SelectionStatus = "vote_open"
	SelectionProgrammation SelectionStatus = "programmation"
)

// Valid reports whether s is a known workflow state.
func (s SelectionStatus) Valid() bool {
	switch s {
	case SelectionDraft, SelectionVoteOpen, SelectionProgrammation:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is a legal
// workflow step. Approval is reachable from draft or vote_open; nothing
// leaves programmation.
func (s SelectionStatus) CanTransition(next SelectionStatus) bool {
	switch s {
	case SelectionDraft:
		return next == SelectionVoteOpen || next == SelectionProgrammation
	case SelectionVoteOpen:
		return next == SelectionProgrammation
	default:
		return false
	}
}

// Selection is a named, curated batch of candidate films moving through
// the review workflow.
type Selection struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Status    SelectionStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Films []SelectionFilm `json:"films,omitempty"`
}

// Approved reports whether scores are frozen.
func (s *Selection) Approved() bool {
	return s.Status == SelectionProgrammation
}

// Transition validates and applies a workflow step.
func (s *Selection) Transition(next SelectionStatus) error {
	if !next.Valid() {
		return Validationf("unknown selection status %q", next)
	}
	if !s.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	s.Status = next

	return nil
}

// SelectionFilm is the pivot between Selection and Film. It is the only
// place a score is durably persisted; everything else is computed at
// read time. Unique per (selectionID, filmID).
type SelectionFilm struct {
	ID          int64  `json:"id"`
	SelectionID int64  `json:"selection_id"`
	FilmID      int64  `json:"film_id"`
	Selected    bool   `json:"selected"`
	Score       int    `json:"score"`
	Category    string `json:"category,omitempty"`
	Comment     string `json:"comment,omitempty"`

	Film *Film `json:"film,omitempty"`
}

// Ballot is one film's staff vote tally submitted at approval time.
type Ballot struct {
	FilmID int64 `json:"id"`
	Votes  int   `json:"votes"`
}

// ValidateBallots checks every tally against the optional voter bound.
// nbVotants <= 0 means no bound was supplied. A tally above the bound is
// a client error, never silently clamped.
func ValidateBallots(ballots []Ballot, nbVotants int) error {
	seen := make(map[int64]struct{}, len(ballots))
	for _, b := range ballots {
		if b.FilmID <= 0 {
			return Validationf("ballot has invalid film id %d", b.FilmID)
		}
		if _, dup := seen[b.FilmID]; dup {
			return Validationf("duplicate ballot for film %d", b.FilmID)
		}
		seen[b.FilmID] = struct{}{}

		if b.Votes < 0 {
			return Validationf("film %d has negative vote count %d", b.FilmID, b.Votes)
		}
		if nbVotants > 0 && b.Votes > nbVotants {
			return Validationf("film %d has %d votes but only %d voters", b.FilmID, b.Votes, nbVotants)
		}
	}

	return nil
}
