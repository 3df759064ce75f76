// Package projection blends sportsbook prop estimates with recency-weighted
// historical performance into a single point projection with a confidence
// rating, then applies the weather adjustment.
package projection

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/config"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/props"
)

// positionBaselines are the fallback weekly averages used when no prop or
// historical data exists for a player.
var positionBaselines = map[model.Position]float64{
	model.PositionQB:  18.5,
	model.PositionRB:  12.0,
	model.PositionWR:  11.5,
	model.PositionTE:  8.0,
	model.PositionK:   7.5,
	model.PositionDST: 7.0,
}

// positionVariances drive the projection range width before confidence
// scaling.
var positionVariances = map[model.Position]float64{
	model.PositionQB:  6.5,
	model.PositionRB:  8.0,
	model.PositionWR:  9.0,
	model.PositionTE:  6.0,
	model.PositionK:   4.0,
	model.PositionDST: 5.5,
}

// Input carries everything the blender needs for one player-week.
type Input struct {
	PlayerID string
	Position model.Position
	Week     int

	// Props is nil when no prop lines exist for the player.
	Props *props.Estimate
	// History is the merged week-score history for the player's slot.
	History []model.PlayerWeekScore
	// Weather is nil when no report is available.
	Weather *model.WeatherReport
}

// Blender combines prop and historical estimates with adaptive weights.
type Blender struct {
	cfg config.BlendConfig
	now func() time.Time
}

// NewBlender creates a Blender from configuration.
func NewBlender(cfg config.BlendConfig) *Blender {
	return &Blender{cfg: cfg, now: time.Now}
}

// Project produces the blended, weather-adjusted projection for one
// player-week. It is pure given Input and the configured clock.
func (b *Blender) Project(in Input) model.Projection {
	propEst, propCount := 0.0, 0
	var propAge time.Duration = -1
	if in.Props != nil {
		propEst = in.Props.Points
		propCount = in.Props.PropCount
		if !in.Props.UpdatedAt.IsZero() {
			propAge = b.now().Sub(in.Props.UpdatedAt)
		}
	}

	histEst := WeightedAverage(in.History, b.cfg.RecencyDecay)
	games := GamesPlayed(in.History)

	propUsable := propEst > 0 && propCount >= b.cfg.MinPropCount
	histUsable := histEst > 0 && games >= 2

	p := model.Projection{
		PlayerID: in.PlayerID,
		Position: in.Position,
		Week:     in.Week,
	}

	switch {
	case propUsable && histUsable:
		propWeight := b.weights(propCount, propAge, games)
		p.Points = propWeight*propEst + (1-propWeight)*histEst
		p.Source = model.SourceBlended
		p.PropWeight = propWeight
		p.HistoricalWeight = 1 - propWeight
		p.Score = b.confidenceScore(propCount, games, propAge, in.Weather != nil)
		p.Confidence = confidenceFromScore(p.Score)

	case propUsable:
		p.Points = propEst
		p.Source = model.SourceProp
		p.PropWeight = 1
		if propCount >= 3 {
			p.Confidence = model.ConfidenceHigh
		} else {
			p.Confidence = model.ConfidenceMedium
		}
		p.Score = b.confidenceScore(propCount, games, propAge, in.Weather != nil)

	case histEst > 0:
		p.Points = histEst
		p.Source = model.SourceHistorical
		p.HistoricalWeight = 1
		if games >= 2 {
			p.Confidence = model.ConfidenceMedium
		} else {
			p.Confidence = model.ConfidenceLow
		}
		p.Score = b.confidenceScore(propCount, games, propAge, in.Weather != nil)

	case propEst > 0:
		// Thin prop data (below the minimum count) with no history beats
		// a bare positional baseline.
		p.Points = propEst
		p.Source = model.SourceProp
		p.PropWeight = 1
		p.Confidence = model.ConfidenceLow
		p.Score = b.confidenceScore(propCount, games, propAge, in.Weather != nil)

	default:
		p.Points = positionBaselines[in.Position]
		p.Source = model.SourceBaseline
		p.Confidence = model.ConfidenceLow
	}

	adjusted, mult := AdjustForWeather(p.Points, in.Position, in.Weather)
	p.Points = adjusted
	p.WeatherMultiplier = mult

	p.Low, p.High = b.projectionRange(p.Points, in.Position, p.Confidence)

	zap.L().Debug("projection: blended",
		zap.String("player_id", in.PlayerID),
		zap.String("source", string(p.Source)),
		zap.Float64("points", p.Points),
		zap.Float64("prop_weight", p.PropWeight),
		zap.String("confidence", string(p.Confidence)),
	)

	return p
}

// weights computes the adaptive prop weight. It starts from the base
// prop/historical split, rewards prop depth and freshness, shifts toward
// props when the historical sample is thin, and clamps into the configured
// band. The historical weight is always the complement, so the pair sums to
// exactly 1.
func (b *Blender) weights(propCount int, propAge time.Duration, games int) float64 {
	w := b.cfg.BasePropWeight

	if extra := propCount - b.cfg.MinPropCount; extra > 0 {
		w += math.Min(float64(extra)*b.cfg.PerPropBonus, b.cfg.PerPropBonusCap)
	}

	if b.fresh(propAge) {
		w += b.cfg.FreshnessBonus
	}

	if games < 2 {
		w += b.cfg.ThinHistoryShift
	}

	return clamp(w, b.cfg.MinPropWeight, b.cfg.MaxPropWeight)
}

func (b *Blender) fresh(propAge time.Duration) bool {
	if propAge < 0 {
		return false
	}
	return propAge < time.Duration(b.cfg.FreshnessWindowHours*float64(time.Hour))
}

// confidenceScore is the weighted point system backing the qualitative
// rating: prop depth up to 40, historical sample up to 30, freshness 15,
// presence of weather data 15.
func (b *Blender) confidenceScore(propCount, games int, propAge time.Duration, hasWeather bool) float64 {
	score := 40 * math.Min(float64(propCount)/3, 1)
	score += 30 * math.Min(float64(games)/4, 1)
	if b.fresh(propAge) {
		score += 15
	}
	if hasWeather {
		score += 15
	}
	return score
}

func confidenceFromScore(score float64) model.Confidence {
	switch {
	case score >= 70:
		return model.ConfidenceHigh
	case score >= 40:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// confidenceRangeScale tightens ranges for confident projections and widens
// them for shaky ones.
func confidenceRangeScale(c model.Confidence) float64 {
	switch c {
	case model.ConfidenceHigh:
		return 0.8
	case model.ConfidenceLow:
		return 1.2
	}
	return 1.0
}

// projectionRange builds the low/high band around the median estimate from
// the position variance scaled by confidence. Low is floored at zero.
func (b *Blender) projectionRange(median float64, pos model.Position, c model.Confidence) (low, high float64) {
	variance := positionVariances[pos] * confidenceRangeScale(c)
	return math.Max(0, median-variance), median + variance
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
