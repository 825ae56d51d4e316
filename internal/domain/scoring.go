package domain

import "math"

// interestWeights is the authoritative weighting table for the interest
// scale. Do not tune without migrating every persisted score.
var interestWeights = map[InterestValue]int{
	InterestSansOpinion:    0,
	InterestNotInterested:  -1,
	InterestCurious:        1,
	InterestVeryInterested: 2,
	InterestMustSee:        3,
}

// InterestWeight returns the scoring weight for a scale value.
// Unrecognized values weigh 0.
func InterestWeight(v InterestValue) int {
	return interestWeights[v]
}

// ComputePopularityScore is the volume-sensitive ranking score:
//
//	Σ over values of weight(v) * count(v)
//
// More voters of the same polarity increases magnitude. Returned
// unrounded (it is an exact integer sum).
func ComputePopularityScore(stats InterestStats) int {
	total := 0
	for v, c := range stats {
		total += interestWeights[v] * c
	}

	return total
}

// ComputeAverageInterest is the normalized sentiment score, roughly in
// [-1, 3], independent of voter volume:
//
//	popularity / voters  (0 when there are no voters)
//
// Returned unrounded; rounding happens only in the composite scores.
func ComputeAverageInterest(stats InterestStats) float64 {
	count := InterestCount(stats)
	if count == 0 {
		return 0
	}

	return float64(ComputePopularityScore(stats)) / float64(count)
}

// ComputeAggregateScore blends normalized interest sentiment (doubled)
// with an average rating signal (weight 1), rounded half away from zero:
//
//	round(averageInterest * 2 + avgRating)
//
// This is the live score shown on the film detail endpoint. A non-finite
// avgRating is treated as 0.
func ComputeAggregateScore(stats InterestStats, avgRating float64) int {
	if math.IsNaN(avgRating) || math.IsInf(avgRating, 0) {
		avgRating = 0
	}

	return int(math.Round(ComputeAverageInterest(stats)*2 + avgRating))
}

// ComputeFinalScore is the approval-time score frozen onto SelectionFilm
// rows when a selection's vote closes:
//
//	votes * 2 + popularity
//
// votes is the explicit staff ballot tally for the film, not derived from
// Interest rows, which is why this path skips voter-count normalization.
// ComputeAggregateScore and ComputeFinalScore feed different endpoints
// and must stay separate formulas.
func ComputeFinalScore(votes int, stats InterestStats) int {
	return votes*2 + ComputePopularityScore(stats)
}
