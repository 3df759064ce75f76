package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-labs/bestball/internal/model"
)

func TestWeightedAverage(t *testing.T) {
	scores := []model.PlayerWeekScore{
		{PlayerID: "p", Week: 1, Points: 10},
		{PlayerID: "p", Week: 2, Points: 0},
		{PlayerID: "p", Week: 3, Points: 14},
	}

	// Weights 1, 0.8, 0.64 by descending week:
	// (14 + 0 + 6.4) / 2.44 = 8.3606...
	assert.InDelta(t, 8.3606, WeightedAverage(scores, 0.8), 0.0001)
}

func TestWeightedAverage_OrderIndependent(t *testing.T) {
	a := []model.PlayerWeekScore{
		{Week: 1, Points: 10},
		{Week: 3, Points: 14},
		{Week: 2, Points: 0},
	}
	b := []model.PlayerWeekScore{
		{Week: 3, Points: 14},
		{Week: 2, Points: 0},
		{Week: 1, Points: 10},
	}

	assert.Equal(t, WeightedAverage(a, 0.8), WeightedAverage(b, 0.8))
}

func TestWeightedAverage_SingleAndEmpty(t *testing.T) {
	assert.Equal(t, 0.0, WeightedAverage(nil, 0.8))
	assert.Equal(t, 17.5, WeightedAverage([]model.PlayerWeekScore{{Week: 1, Points: 17.5}}, 0.8))
}

func TestWeightedAverage_DecayIndexedByPositionNotWeekGap(t *testing.T) {
	// Weeks 1 and 3 with week 2 missing: the gap does not widen the decay.
	gapped := []model.PlayerWeekScore{
		{Week: 1, Points: 10},
		{Week: 3, Points: 14},
	}
	adjacent := []model.PlayerWeekScore{
		{Week: 2, Points: 10},
		{Week: 3, Points: 14},
	}

	assert.Equal(t, WeightedAverage(adjacent, 0.8), WeightedAverage(gapped, 0.8))
}

func TestGamesPlayed(t *testing.T) {
	scores := []model.PlayerWeekScore{
		{Week: 1, Points: 10},
		{Week: 2, Points: 0}, // non-scoring week is not a sample
		{Week: 3, Points: 14},
	}

	assert.Equal(t, 2, GamesPlayed(scores))
	assert.Equal(t, 0, GamesPlayed(nil))
}
