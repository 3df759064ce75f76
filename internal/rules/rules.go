// Package rules holds the immutable scoring rule set applied by every
// calculator. A Rules value is built once from configuration and threaded
// into each call; there are no package-level rule globals.
package rules

import (
	"github.com/rotisserie/eris"

	"github.com/gridiron-labs/bestball/internal/config"
	"github.com/gridiron-labs/bestball/internal/model"
)

// Band is one threshold band of a banded lookup. Bands are contiguous,
// non-overlapping, and ordered by ascending UpTo; the final band is
// open-ended.
type Band struct {
	UpTo   int
	Points float64
}

// Rules is an immutable league rule set.
type Rules struct {
	PassYardsPerPoint float64
	RushYardsPerPoint float64
	RecYardsPerPoint  float64

	PassTD float64
	RushTD float64
	RecTD  float64

	Reception    float64
	Interception float64
	FumbleLost   float64
	TwoPoint     float64
	ExtraPoint   float64
	MissedXP     float64

	fieldGoalBands []Band

	Sack            float64
	DefInterception float64
	FumbleRecovery  float64
	DefTD           float64
	Safety          float64

	pointsAllowedBands []Band
}

// FromConfig validates a scoring configuration and freezes it into a Rules
// value.
func FromConfig(cfg config.ScoringConfig) (Rules, error) {
	if cfg.PassYardsPerPoint <= 0 || cfg.RushYardsPerPoint <= 0 || cfg.RecYardsPerPoint <= 0 {
		return Rules{}, eris.New("rules: yardage divisors must be positive")
	}

	fg, err := buildBands(cfg.FieldGoalBands)
	if err != nil {
		return Rules{}, eris.Wrap(err, "rules: field goal bands")
	}
	pa, err := buildBands(cfg.PointsAllowedBands)
	if err != nil {
		return Rules{}, eris.Wrap(err, "rules: points allowed bands")
	}

	return Rules{
		PassYardsPerPoint:  cfg.PassYardsPerPoint,
		RushYardsPerPoint:  cfg.RushYardsPerPoint,
		RecYardsPerPoint:   cfg.RecYardsPerPoint,
		PassTD:             cfg.PassTD,
		RushTD:             cfg.RushTD,
		RecTD:              cfg.RecTD,
		Reception:          cfg.Reception,
		Interception:       cfg.Interception,
		FumbleLost:         cfg.FumbleLost,
		TwoPoint:           cfg.TwoPoint,
		ExtraPoint:         cfg.ExtraPoint,
		MissedXP:           cfg.MissedXP,
		fieldGoalBands:     fg,
		Sack:               cfg.Sack,
		DefInterception:    cfg.DefInterception,
		FumbleRecovery:     cfg.FumbleRecovery,
		DefTD:              cfg.DefTD,
		Safety:             cfg.Safety,
		pointsAllowedBands: pa,
	}, nil
}

// buildBands validates ordering: every band before the last must have a
// strictly ascending UpTo.
func buildBands(bands []config.Band) ([]Band, error) {
	if len(bands) == 0 {
		return nil, eris.New("no bands configured")
	}
	out := make([]Band, len(bands))
	for i, b := range bands {
		if i > 0 && i < len(bands)-1 && b.UpTo <= bands[i-1].UpTo {
			return nil, eris.Errorf("band %d threshold %d not ascending", i, b.UpTo)
		}
		out[i] = Band{UpTo: b.UpTo, Points: b.Points}
	}
	return out, nil
}

// lookupBand resolves v to exactly one band. Values below the first
// threshold (including malformed negatives) resolve to the first band;
// values past every threshold resolve to the open-ended final band.
func lookupBand(bands []Band, v int) float64 {
	for i, b := range bands {
		if i == len(bands)-1 {
			break
		}
		if v <= b.UpTo {
			return b.Points
		}
	}
	return bands[len(bands)-1].Points
}

// FieldGoalPoints returns the point value of a made field goal at the given
// distance. An unparseable distance of zero falls into the lowest band.
func (r Rules) FieldGoalPoints(distance int) float64 {
	return lookupBand(r.fieldGoalBands, distance)
}

// PointsAllowedPoints returns the defense's points-allowed contribution.
func (r Rules) PointsAllowedPoints(pointsAllowed int) float64 {
	return lookupBand(r.pointsAllowedBands, pointsAllowed)
}

// YardsPerPoint returns the divisor for the given prop yardage category,
// or false for non-yardage categories.
func (r Rules) YardsPerPoint(c model.PropCategory) (float64, bool) {
	switch c {
	case model.PropPassYards:
		return r.PassYardsPerPoint, true
	case model.PropRushYards:
		return r.RushYardsPerPoint, true
	case model.PropRecYards:
		return r.RecYardsPerPoint, true
	}
	return 0, false
}
