package domain

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestComputePopularityScore(t *testing.T) {
	tests := []struct {
		name     string
		stats    InterestStats
		expected int
	}{
		{
			name:     "empty stats",
			stats:    NormalizeInterestStats(nil),
			expected: 0,
		},
		{
			name: "mixed polarity",
			stats: NormalizeInterestStats(RawInterestCounts{
				"MUST_SEE":       3, // 3*3 = 9
				"CURIOUS":        2, // 2*1 = 2
				"NOT_INTERESTED": 1, // 1*-1 = -1
			}),
			expected: 10,
		},
		{
			name: "sans opinion weighs nothing",
			stats: NormalizeInterestStats(RawInterestCounts{
				"SANS_OPINION": 50,
				"CURIOUS":      1,
			}),
			expected: 1,
		},
		{
			name: "all negative",
			stats: NormalizeInterestStats(RawInterestCounts{
				"NOT_INTERESTED": 4,
			}),
			expected: -4,
		},
		{
			name: "volume sensitive",
			stats: NormalizeInterestStats(RawInterestCounts{
				"VERY_INTERESTED": 10, // 10*2 = 20
			}),
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ComputePopularityScore(tt.stats)
			if score != tt.expected {
				t.Errorf("ComputePopularityScore() = %v, want %v", score, tt.expected)
			}
		})
	}
}

func TestComputeAverageInterest(t *testing.T) {
	tests := []struct {
		name     string
		stats    InterestStats
		expected float64
	}{
		{
			name:     "no voters yields exactly zero",
			stats:    NormalizeInterestStats(nil),
			expected: 0,
		},
		{
			name: "popularity over voters",
			stats: NormalizeInterestStats(RawInterestCounts{
				"MUST_SEE":       3,
				"CURIOUS":        2,
				"NOT_INTERESTED": 1,
			}),
			// popularity 10, voters 6
			expected: 10.0 / 6.0,
		},
		{
			name: "sans opinion dilutes the average",
			stats: NormalizeInterestStats(RawInterestCounts{
				"MUST_SEE":     1,
				"SANS_OPINION": 3,
			}),
			expected: 0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg := ComputeAverageInterest(tt.stats)
			if math.Abs(avg-tt.expected) > floatTolerance {
				t.Errorf("ComputeAverageInterest() = %v, want %v", avg, tt.expected)
			}
		})
	}
}

func TestComputeAggregateScore(t *testing.T) {
	tests := []struct {
		name      string
		stats     InterestStats
		avgRating float64
		expected  int
	}{
		{
			name: "detail endpoint scenario",
			stats: NormalizeInterestStats(RawInterestCounts{
				"MUST_SEE":       3,
				"CURIOUS":        2,
				"NOT_INTERESTED": 1,
			}),
			// avgInterest 10/6 ≈ 1.667 → round(1.667*2 + 4) = round(7.333) = 7
			avgRating: 4,
			expected:  7,
		},
		{
			name:      "no signals at all",
			stats:     NormalizeInterestStats(nil),
			avgRating: 0,
			expected:  0,
		},
		{
			name:      "rating only",
			stats:     NormalizeInterestStats(nil),
			avgRating: 3.4,
			expected:  3,
		},
		{
			name: "half rounds away from zero",
			stats: NormalizeInterestStats(RawInterestCounts{
				"CURIOUS": 1, // avgInterest 1 → 2 + 0.5 = 2.5
			}),
			avgRating: 0.5,
			expected:  3,
		},
		{
			name: "NaN rating treated as zero",
			stats: NormalizeInterestStats(RawInterestCounts{
				"MUST_SEE": 2,
			}),
			avgRating: math.NaN(),
			expected:  6,
		},
		{
			name:      "infinite rating treated as zero",
			stats:     NormalizeInterestStats(RawInterestCounts{"CURIOUS": 1}),
			avgRating: math.Inf(1),
			expected:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ComputeAggregateScore(tt.stats, tt.avgRating)
			if score != tt.expected {
				t.Errorf("ComputeAggregateScore() = %v, want %v", score, tt.expected)
			}
		})
	}
}

func TestComputeFinalScore(t *testing.T) {
	tests := []struct {
		name     string
		votes    int
		stats    InterestStats
		expected int
	}{
		{
			name:  "ballots plus raw interest sum",
			votes: 5,
			stats: NormalizeInterestStats(RawInterestCounts{
				"MUST_SEE": 2, // interestScore 6
			}),
			expected: 16, // 5*2 + 6
		},
		{
			name:     "no interest rows",
			votes:    3,
			stats:    NormalizeInterestStats(nil),
			expected: 6,
		},
		{
			name:  "negative interest can drag the score down",
			votes: 1,
			stats: NormalizeInterestStats(RawInterestCounts{
				"NOT_INTERESTED": 5,
			}),
			expected: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ComputeFinalScore(tt.votes, tt.stats)
			if score != tt.expected {
				t.Errorf("ComputeFinalScore() = %v, want %v", score, tt.expected)
			}
		})
	}
}

// The approval formula intentionally skips voter normalization: it must
// equal votes*2 + popularity, never votes*2 + averageInterest.
func TestFinalScoreUsesUnnormalizedSum(t *testing.T) {
	stats := NormalizeInterestStats(RawInterestCounts{
		"MUST_SEE": 10, // popularity 30, average 3
	})

	if got := ComputeFinalScore(0, stats); got != 30 {
		t.Errorf("ComputeFinalScore(0, stats) = %v, want popularity sum 30", got)
	}
}

func TestNormalizeInterestStats(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawInterestCounts
		expected InterestStats
	}{
		{
			name: "unknown key dropped, valid counts kept",
			raw:  RawInterestCounts{"FOO": 5, "MUST_SEE": 3},
			expected: InterestStats{
				InterestSansOpinion:    0,
				InterestNotInterested:  0,
				InterestCurious:        0,
				InterestVeryInterested: 0,
				InterestMustSee:        3,
			},
		},
		{
			name: "nil input yields all zeroes",
			raw:  nil,
			expected: InterestStats{
				InterestSansOpinion:    0,
				InterestNotInterested:  0,
				InterestCurious:        0,
				InterestVeryInterested: 0,
				InterestMustSee:        0,
			},
		},
		{
			name: "non-finite counts coerce to zero",
			raw: RawInterestCounts{
				"CURIOUS":         math.NaN(),
				"VERY_INTERESTED": math.Inf(1),
				"MUST_SEE":        2,
			},
			expected: InterestStats{
				InterestSansOpinion:    0,
				InterestNotInterested:  0,
				InterestCurious:        0,
				InterestVeryInterested: 0,
				InterestMustSee:        2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeInterestStats(tt.raw)
			if len(got) != len(tt.expected) {
				t.Fatalf("NormalizeInterestStats() has %d keys, want %d", len(got), len(tt.expected))
			}
			for k, want := range tt.expected {
				if got[k] != want {
					t.Errorf("NormalizeInterestStats()[%s] = %v, want %v", k, got[k], want)
				}
			}
		})
	}
}

func TestInterestCount(t *testing.T) {
	stats := NormalizeInterestStats(RawInterestCounts{
		"MUST_SEE":       3,
		"CURIOUS":        2,
		"NOT_INTERESTED": 1,
	})

	if got := InterestCount(stats); got != 6 {
		t.Errorf("InterestCount() = %v, want 6", got)
	}
	if got := InterestCount(NormalizeInterestStats(nil)); got != 0 {
		t.Errorf("InterestCount(empty) = %v, want 0", got)
	}
}

func TestInterestWeight(t *testing.T) {
	tests := []struct {
		value    InterestValue
		expected int
	}{
		{InterestSansOpinion, 0},
		{InterestNotInterested, -1},
		{InterestCurious, 1},
		{InterestVeryInterested, 2},
		{InterestMustSee, 3},
		{"LEGACY_VALUE", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			if got := InterestWeight(tt.value); got != tt.expected {
				t.Errorf("InterestWeight(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}
