package projection

import "github.com/gridiron-labs/bestball/internal/model"

// weatherMultipliers is the fixed position x severity adjustment table.
// Passing games suffer most in bad conditions, kickers worst of all;
// defenses get small bonuses since severe weather forces opponent miscues.
var weatherMultipliers = map[model.Position]map[model.Severity]float64{
	model.PositionQB:  {model.SeverityLow: 0.97, model.SeverityMedium: 0.92, model.SeverityHigh: 0.85},
	model.PositionRB:  {model.SeverityLow: 0.99, model.SeverityMedium: 0.96, model.SeverityHigh: 0.92},
	model.PositionWR:  {model.SeverityLow: 0.98, model.SeverityMedium: 0.94, model.SeverityHigh: 0.88},
	model.PositionTE:  {model.SeverityLow: 0.98, model.SeverityMedium: 0.95, model.SeverityHigh: 0.90},
	model.PositionK:   {model.SeverityLow: 0.92, model.SeverityMedium: 0.85, model.SeverityHigh: 0.75},
	model.PositionDST: {model.SeverityLow: 1.02, model.SeverityMedium: 1.05, model.SeverityHigh: 1.10},
}

// WeatherMultiplier returns the adjustment factor for a position under the
// given report. Dome games and missing reports apply no adjustment.
func WeatherMultiplier(pos model.Position, w *model.WeatherReport) float64 {
	if w == nil || w.Dome || w.Severity == model.SeverityNone {
		return 1.0
	}
	if m, ok := weatherMultipliers[pos][w.Severity]; ok {
		return m
	}
	return 1.0
}

// AdjustForWeather multiplies a blended estimate by the position/severity
// factor and returns both the adjusted estimate and the factor applied.
func AdjustForWeather(points float64, pos model.Position, w *model.WeatherReport) (float64, float64) {
	m := WeatherMultiplier(pos, w)
	return points * m, m
}
