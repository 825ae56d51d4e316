// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"math"
	"time"
)

// InterestValue is one step on the five-value scale a member picks when
// reacting to a candidate film.
type InterestValue string

const (
	InterestSansOpinion    InterestValue = "SANS_OPINION"
	InterestNotInterested  InterestValue = "NOT_INTERESTED"
	InterestCurious        InterestValue = "CURIOUS"
	InterestVeryInterested InterestValue = "VERY_INTERESTED"
	InterestMustSee        InterestValue = "MUST_SEE"
)

// InterestValues returns the recognized scale values in ascending order
// of enthusiasm.
func InterestValues() []InterestValue {
	return []InterestValue{
		InterestSansOpinion,
		InterestNotInterested,
		InterestCurious,
		InterestVeryInterested,
		InterestMustSee,
	}
}

// Valid reports whether v is one of the recognized scale values.
func (v InterestValue) Valid() bool {
	switch v {
	case InterestSansOpinion, InterestNotInterested, InterestCurious,
		InterestVeryInterested, InterestMustSee:
		return true
	default:
		return false
	}
}

// Interest is one user's qualitative reaction to one film.
// At most one row exists per (user, film); later votes overwrite earlier ones.
type Interest struct {
	ID        int64         `json:"id"`
	UserID    string        `json:"user_id"`
	FilmID    int64         `json:"film_id"`
	Value     InterestValue `json:"value"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Film *Film `json:"film,omitempty"`
}

// Rating is one user's numeric quality judgment of a film, distinct from
// Interest. Same (user, film) uniqueness.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	FilmID    int64     `json:"film_id"`
	Note      int       `json:"note"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RawInterestCounts is the per-value tally as it comes out of storage:
// keyed by the stored string, counts possibly garbage on partially
// migrated data. Always pass it through NormalizeInterestStats before
// doing arithmetic.
type RawInterestCounts map[string]float64

// InterestStats maps every recognized scale value to a voter count.
// Produced by NormalizeInterestStats, so lookups are total.
type InterestStats map[InterestValue]int

// NormalizeInterestStats converts raw stored counts into a total mapping
// over the recognized scale. Unknown or legacy keys are dropped,
// non-finite counts coerce to 0, missing values default to 0. The score
// functions rely on this being defined for every possible stored value.
func NormalizeInterestStats(raw RawInterestCounts) InterestStats {
	stats := InterestStats{
		InterestSansOpinion:    0,
		InterestNotInterested:  0,
		InterestCurious:        0,
		InterestVeryInterested: 0,
		InterestMustSee:        0,
	}

	for key, count := range raw {
		v := InterestValue(key)
		if !v.Valid() {
			continue
		}
		stats[v] = toCount(count)
	}

	return stats
}

// InterestCount returns the total number of voters across all values.
// A volume diagnostic, never a score.
func InterestCount(stats InterestStats) int {
	total := 0
	for _, c := range stats {
		total += c
	}

	return total
}

// toCount parses a stored count, falling back to 0 when it is not a
// finite number.
func toCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return int(v)
}
