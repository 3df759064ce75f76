package projection

import (
	"sort"

	"github.com/gridiron-labs/bestball/internal/model"
)

// WeightedAverage computes the recency-weighted mean of past week scores:
// the most recent week is weighted 1 and each older week is weighted by
// decay^n in strict descending-week order. The decay is indexed by week
// position, never by elapsed calendar time. Returns 0 for an empty history.
func WeightedAverage(scores []model.PlayerWeekScore, decay float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	sorted := make([]model.PlayerWeekScore, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Week > sorted[j].Week })

	weight := 1.0
	var sum, weightSum float64
	for _, s := range sorted {
		sum += s.Points * weight
		weightSum += weight
		weight *= decay
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// GamesPlayed counts weeks with a nonzero score, the sample-size signal the
// blender uses.
func GamesPlayed(scores []model.PlayerWeekScore) int {
	n := 0
	for _, s := range scores {
		if s.Points != 0 {
			n++
		}
	}
	return n
}
