// Package props converts sportsbook prop lines into a point-equivalent
// sub-projection under a scoring rule set.
package props

import (
	"math"
	"time"

	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/rules"
)

// Estimate is the point-equivalent aggregation of one player's prop lines.
type Estimate struct {
	Points float64 `json:"points"`
	// PropCount is the number of distinct lines that contributed.
	PropCount int       `json:"prop_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Aggregate maps each prop line to fantasy points and sums the results.
// Unknown categories are ignored silently. The anytime-TD probability line
// is applied only for non-QB positions, since a QB's touchdown upside is
// already priced into passing-TD props.
func Aggregate(lines []model.PropLine, pos model.Position, r rules.Rules) Estimate {
	var est Estimate

	var recYards, rushYards float64
	var haveRecYards, haveRushYards, haveReceptions, haveTDProb bool

	for _, line := range lines {
		switch line.Category {
		case model.PropPassYards:
			est.Points += line.Value / r.PassYardsPerPoint
		case model.PropPassTDs:
			est.Points += line.Value * r.PassTD
		case model.PropRushYards:
			est.Points += line.Value / r.RushYardsPerPoint
			rushYards = line.Value
			haveRushYards = true
		case model.PropRecYards:
			est.Points += line.Value / r.RecYardsPerPoint
			recYards = line.Value
			haveRecYards = true
		case model.PropReceptions:
			est.Points += line.Value * r.Reception
			haveReceptions = true
		case model.PropAnytimeTD:
			if pos == model.PositionQB {
				continue
			}
			est.Points += line.Value * r.RushTD
			haveTDProb = true
		default:
			continue
		}
		est.PropCount++
		if line.UpdatedAt.After(est.UpdatedAt) {
			est.UpdatedAt = line.UpdatedAt
		}
	}

	// Books often skip the receptions market for thin slates; estimate one
	// catch per ten receiving yards.
	if haveRecYards && !haveReceptions {
		est.Points += math.Round(recYards/10) * r.Reception
	}

	// Skill positions with yardage but no TD market get a heuristic
	// anytime-TD probability from yardage volume.
	if !haveTDProb {
		if p := estimatedTDProbability(pos, recYards, rushYards, haveRecYards, haveRushYards); p > 0 {
			est.Points += p * r.RushTD
		}
	}

	return est
}

// estimatedTDProbability approximates an anytime-TD probability from
// yardage lines: receiving volume for WR/TE, rushing volume for RB. Capped
// below certainty.
func estimatedTDProbability(pos model.Position, recYards, rushYards float64, haveRec, haveRush bool) float64 {
	var p float64
	switch pos {
	case model.PositionWR, model.PositionTE:
		if haveRec {
			p = recYards / 100
		}
	case model.PositionRB:
		if haveRush {
			p = rushYards / 70
		}
	}
	return math.Min(p, 0.99)
}
