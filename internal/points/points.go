// Package points applies a scoring rule set to raw stat lines. All math is
// full precision; rounding happens only at output boundaries.
package points

import (
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/rules"
)

// Calculate produces a per-category breakdown and total for one player's
// game line. The total equals the sum of categories by construction.
func Calculate(line *model.RawStatLine, r rules.Rules) model.Breakdown {
	var b model.Breakdown

	b.Add(model.CategoryPassYards, float64(line.PassYards)/r.PassYardsPerPoint)
	b.Add(model.CategoryPassTDs, float64(line.PassTDs)*r.PassTD)
	b.Add(model.CategoryInterception, float64(line.Interceptions)*r.Interception)

	b.Add(model.CategoryRushYards, float64(line.RushYards)/r.RushYardsPerPoint)
	b.Add(model.CategoryRushTDs, float64(line.RushTDs)*r.RushTD)

	b.Add(model.CategoryReceptions, float64(line.Receptions)*r.Reception)
	b.Add(model.CategoryRecYards, float64(line.RecYards)/r.RecYardsPerPoint)
	b.Add(model.CategoryRecTDs, float64(line.RecTDs)*r.RecTD)

	b.Add(model.CategoryFumbles, float64(line.FumblesLost)*r.FumbleLost)

	missed := line.XPAttempted - line.XPMade
	if missed < 0 {
		missed = 0
	}
	b.Add(model.CategoryExtraPoints, float64(line.XPMade)*r.ExtraPoint+float64(missed)*r.MissedXP)

	// Field goal points were banded by distance at extraction time.
	b.Add(model.CategoryFieldGoals, line.FieldGoalPoints)

	b.Add(model.CategoryTwoPoint, float64(line.TwoPointConversions)*r.TwoPoint)

	return b
}

// CalculateDefense produces the breakdown for a team defense line.
func CalculateDefense(line *model.RawDefenseLine, r rules.Rules) model.Breakdown {
	var b model.Breakdown

	b.Add(model.CategorySacks, float64(line.Sacks)*r.Sack)
	b.Add(model.CategoryDefInterceptions, float64(line.Interceptions)*r.DefInterception)
	b.Add(model.CategoryFumbleRecoveries, float64(line.FumbleRecoveries)*r.FumbleRecovery)
	b.Add(model.CategoryDefTDs, float64(line.DefensiveTDs)*r.DefTD)
	b.Add(model.CategorySafeties, float64(line.Safeties)*r.Safety)
	b.Add(model.CategoryPointsAllowed, r.PointsAllowedPoints(line.PointsAllowed))

	return b
}
