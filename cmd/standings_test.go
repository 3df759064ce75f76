package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-labs/bestball/internal/config"
	"github.com/gridiron-labs/bestball/internal/engine"
	"github.com/gridiron-labs/bestball/internal/model"
)

func TestResolveRound(t *testing.T) {
	cfg = &config.Config{Bracket: config.BracketConfig{EliminatedThresholds: []int{6, 10, 12, 13}}}

	// Derived from the elimination count.
	assert.Equal(t, model.RoundWildCard, resolveRound(seasonContext{}, 0))
	assert.Equal(t, model.RoundDivisional, resolveRound(seasonContext{Eliminated: make([]string, 6)}, 0))

	// Context round beats the derived one; the flag beats both.
	assert.Equal(t, model.RoundConference, resolveRound(seasonContext{Round: 3}, 0))
	assert.Equal(t, model.RoundSuperBowl, resolveRound(seasonContext{Round: 3}, 5))
}

func TestStandingsRows(t *testing.T) {
	standings := []engine.OwnerStanding{
		{Owner: "Alice", ActualPoints: 101.456, RemainingEV: 44.2, TotalValue: 145.656, AliveSlots: 7},
		{Owner: "Bob", ActualPoints: 98, RemainingEV: 12.1, TotalValue: 110.1, AliveSlots: 3},
	}

	rows := standingsRows(standings)
	assert.Equal(t, []string{"rank", "owner", "actual", "remaining_ev", "total", "alive_slots"}, rows[0])
	assert.Equal(t, []string{"1", "Alice", "101.46", "44.20", "145.66", "7"}, rows[1])
	assert.Equal(t, []string{"2", "Bob", "98.00", "12.10", "110.10", "3"}, rows[2])
}

