package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-labs/bestball/internal/model"
)

func slotWithSub() model.RosterSlot {
	return model.RosterSlot{
		ID:     "alice/RB1",
		Owner:  "Alice",
		Slot:   model.SlotRB1,
		Player: model.Player{ID: "p-pacheco", Name: "Isiah Pacheco", Position: model.PositionRB, Team: "KC"},
		Substitution: &model.Substitution{
			EffectiveWeek: 2,
			Reason:        "injury",
			Player:        model.Player{ID: "p-perine", Name: "Samaje Perine", Position: model.PositionRB, Team: "KC"},
		},
	}
}

func TestActive(t *testing.T) {
	slot := slotWithSub()

	assert.Equal(t, "p-pacheco", Active(slot, 1).ID, "original before the boundary")
	assert.Equal(t, "p-perine", Active(slot, 2).ID, "substitute at the effective week")
	assert.Equal(t, "p-perine", Active(slot, 3).ID)

	slot.Substitution = nil
	assert.Equal(t, "p-pacheco", Active(slot, 5).ID)
}

func TestCombinedHistory_SplitsAtBoundary(t *testing.T) {
	slot := slotWithSub()
	scores := []model.PlayerWeekScore{
		{PlayerID: "p-pacheco", Week: 1, Points: 14.2},
		{PlayerID: "p-pacheco", Week: 2, Points: 9.0}, // wrong side of the boundary
		{PlayerID: "p-perine", Week: 1, Points: 4.0},  // wrong side of the boundary
		{PlayerID: "p-perine", Week: 2, Points: 11.5},
		{PlayerID: "p-kelce", Week: 1, Points: 20.0}, // different slot entirely
	}

	got := CombinedHistory(slot, scores)
	assert.Len(t, got, 2)
	assert.Equal(t, "p-pacheco", got[0].PlayerID)
	assert.Equal(t, 1, got[0].Week)
	assert.Equal(t, "p-perine", got[1].PlayerID)
	assert.Equal(t, 2, got[1].Week)
}

func TestCombinedPoints(t *testing.T) {
	slot := slotWithSub()
	scores := []model.PlayerWeekScore{
		{PlayerID: "p-pacheco", Week: 1, Points: 14.2},
		{PlayerID: "p-perine", Week: 2, Points: 11.5},
		{PlayerID: "p-perine", Week: 1, Points: 4.0},
	}

	assert.InDelta(t, 25.7, CombinedPoints(slot, scores), 1e-9)
}

func TestCombinedHistory_NoSubstitution(t *testing.T) {
	slot := slotWithSub()
	slot.Substitution = nil
	scores := []model.PlayerWeekScore{
		{PlayerID: "p-pacheco", Week: 1, Points: 14.2},
		{PlayerID: "p-perine", Week: 2, Points: 11.5},
	}

	got := CombinedHistory(slot, scores)
	assert.Len(t, got, 1)
	assert.Equal(t, "p-pacheco", got[0].PlayerID)
}

func TestNormalize_HonorsFirstSubstitution(t *testing.T) {
	slot := slotWithSub()
	subs := []model.Substitution{
		{EffectiveWeek: 2, Player: model.Player{ID: "p-perine"}},
		{EffectiveWeek: 3, Player: model.Player{ID: "p-hunt"}},
	}

	got := Normalize(slot, subs)
	assert.Equal(t, "p-perine", got.Substitution.Player.ID)

	got = Normalize(slot, nil)
	assert.Nil(t, got.Substitution)
}
