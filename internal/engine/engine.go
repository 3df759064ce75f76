// Package engine composes the scoring and projection pipeline into per-slot
// and per-owner results: combined actual points plus rest-of-bracket
// expected value, the league's ranking metric.
package engine

import (
	"sort"

	"github.com/gridiron-labs/bestball/internal/bracket"
	"github.com/gridiron-labs/bestball/internal/match"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/projection"
	"github.com/gridiron-labs/bestball/internal/props"
	"github.com/gridiron-labs/bestball/internal/roster"
	"github.com/gridiron-labs/bestball/internal/rules"
)

// Inputs carries the externally supplied facts for one evaluation. The
// engine is a pure function of these; it fetches nothing.
type Inputs struct {
	Week  int
	Round model.BracketRound

	// Scores maps player id to recorded week scores.
	Scores map[string][]model.PlayerWeekScore
	// Props maps player id to current sportsbook lines.
	Props map[string][]model.PropLine
	// Weather maps normalized team abbreviation to the venue report.
	Weather map[string]*model.WeatherReport
	// WinProbs maps normalized team abbreviation to per-round win
	// probabilities.
	WinProbs map[string]map[model.BracketRound]float64
	// Eliminated and Byes are keyed by normalized team abbreviation.
	Eliminated model.TeamSet
	Byes       model.TeamSet
}

// SlotResult is the full evaluation of one roster slot.
type SlotResult struct {
	Slot         model.RosterSlot    `json:"slot"`
	ActivePlayer model.Player        `json:"active_player"`
	ActualPoints float64             `json:"actual_points"`
	Projection   model.Projection    `json:"projection"`
	WeekEV       *float64            `json:"week_ev"`
	Remaining    bracket.RemainingEV `json:"remaining"`
	Eliminated   bool                `json:"eliminated"`
}

// OwnerStanding aggregates an owner's roster. TotalValue (actual points
// plus remaining EV) is the ranking metric.
type OwnerStanding struct {
	Owner        string       `json:"owner"`
	ActualPoints float64      `json:"actual_points"`
	RemainingEV  float64      `json:"remaining_ev"`
	TotalValue   float64      `json:"total_value"`
	AliveSlots   int          `json:"alive_slots"`
	Slots        []SlotResult `json:"slots"`
}

// Engine evaluates roster slots against a rule set and blend configuration.
type Engine struct {
	rules   rules.Rules
	blender *projection.Blender
}

// New creates an Engine.
func New(r rules.Rules, blender *projection.Blender) *Engine {
	return &Engine{rules: r, blender: blender}
}

// EvaluateSlot runs the full pipeline for one roster slot: substitution
// resolution, combined actual points, prop aggregation, adaptive blend,
// weather adjustment, and bracket EV. All team checks use the active
// player's team, not the original's.
func (e *Engine) EvaluateSlot(slot model.RosterSlot, in Inputs) SlotResult {
	active := roster.Active(slot, in.Week)
	team := match.Normalize(active.Team)
	eliminated := in.Eliminated[team]
	bye := in.Byes[team]

	pooled := mergedScores(slot, in.Scores)
	history := roster.CombinedHistory(slot, pooled)
	actual := roster.CombinedPoints(slot, pooled)

	var propEst *props.Estimate
	if lines := in.Props[active.ID]; len(lines) > 0 {
		est := props.Aggregate(lines, active.Position, e.rules)
		propEst = &est
	}

	proj := e.blender.Project(projection.Input{
		PlayerID: active.ID,
		Position: active.Position,
		Week:     in.Week,
		Props:    propEst,
		History:  history,
		Weather:  in.Weather[team],
	})

	probs := func(round model.BracketRound) (float64, bool) {
		p, ok := in.WinProbs[team][round]
		return p, ok
	}

	var weekProb *float64
	if p, ok := in.WinProbs[team][in.Round]; ok {
		weekProb = &p
	}

	return SlotResult{
		Slot:         slot,
		ActivePlayer: active,
		ActualPoints: actual,
		Projection:   proj,
		WeekEV:       bracket.WeekEV(proj.Points, in.Round, weekProb, eliminated, bye),
		Remaining:    bracket.Remaining(proj.Points, in.Round, probs, eliminated, bye),
		Eliminated:   eliminated,
	}
}

// Standings evaluates every slot and aggregates per owner, sorted by total
// value descending.
func (e *Engine) Standings(slots []model.RosterSlot, in Inputs) []OwnerStanding {
	byOwner := make(map[string]*OwnerStanding)
	var order []string

	for _, slot := range slots {
		res := e.EvaluateSlot(slot, in)

		st, ok := byOwner[slot.Owner]
		if !ok {
			st = &OwnerStanding{Owner: slot.Owner}
			byOwner[slot.Owner] = st
			order = append(order, slot.Owner)
		}
		st.Slots = append(st.Slots, res)
		st.ActualPoints += res.ActualPoints
		st.RemainingEV += res.Remaining.Total
		if !res.Eliminated {
			st.AliveSlots++
		}
	}

	standings := make([]OwnerStanding, 0, len(byOwner))
	for _, owner := range order {
		st := byOwner[owner]
		st.TotalValue = st.ActualPoints + st.RemainingEV
		standings = append(standings, *st)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalValue > standings[j].TotalValue
	})
	return standings
}

// mergedScores pools the recorded scores of both players bound to a slot so
// the resolver can filter them at the substitution boundary.
func mergedScores(slot model.RosterSlot, scores map[string][]model.PlayerWeekScore) []model.PlayerWeekScore {
	out := append([]model.PlayerWeekScore(nil), scores[slot.Player.ID]...)
	if slot.Substitution != nil && slot.Substitution.Player.ID != slot.Player.ID {
		out = append(out, scores[slot.Substitution.Player.ID]...)
	}
	return out
}
