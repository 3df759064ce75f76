// Package roster resolves which player counts toward a roster slot for a
// given week once injury substitutions come into play.
package roster

import (
	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/model"
)

// Active returns the player whose stats, team, and elimination status are
// authoritative for the slot in week w: the substitute from its effective
// week onward, the original before.
func Active(slot model.RosterSlot, w int) model.Player {
	if slot.Substituted(w) {
		return slot.Substitution.Player
	}
	return slot.Player
}

// CombinedHistory merges the two players' week scores at the substitution
// boundary: original weeks strictly before the effective week, substitute
// weeks at or after it. A stray score recorded for the wrong side of the
// boundary is never counted. Without a substitution, only the original
// player's scores pass.
func CombinedHistory(slot model.RosterSlot, scores []model.PlayerWeekScore) []model.PlayerWeekScore {
	var out []model.PlayerWeekScore
	for _, s := range scores {
		if attributable(slot, s) {
			out = append(out, s)
		}
	}
	return out
}

// CombinedPoints sums the merged history.
func CombinedPoints(slot model.RosterSlot, scores []model.PlayerWeekScore) float64 {
	var total float64
	for _, s := range scores {
		if attributable(slot, s) {
			total += s.Points
		}
	}
	return total
}

func attributable(slot model.RosterSlot, s model.PlayerWeekScore) bool {
	if slot.Substitution == nil {
		return s.PlayerID == slot.Player.ID
	}
	boundary := slot.Substitution.EffectiveWeek
	if s.Week < boundary {
		return s.PlayerID == slot.Player.ID
	}
	return s.PlayerID == slot.Substitution.Player.ID
}

// Normalize enforces the at-most-one-substitution invariant on records
// coming back from a store. Extra substitutions are dropped, only the
// first is honored.
func Normalize(slot model.RosterSlot, subs []model.Substitution) model.RosterSlot {
	switch len(subs) {
	case 0:
		slot.Substitution = nil
	case 1:
		s := subs[0]
		slot.Substitution = &s
	default:
		s := subs[0]
		slot.Substitution = &s
		zap.L().Warn("roster: multiple substitutions for slot, honoring first",
			zap.String("slot_id", slot.ID),
			zap.String("owner", slot.Owner),
			zap.Int("count", len(subs)),
		)
	}
	return slot
}
