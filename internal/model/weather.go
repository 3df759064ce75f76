package model

// Severity tiers a game's weather impact. Computed upstream from the raw
// report; the engine only consumes the tier.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// WeatherReport describes game-time conditions for one venue.
type WeatherReport struct {
	TempF     float64  `json:"temp_f"`
	WindMPH   float64  `json:"wind_mph"`
	Condition string   `json:"condition"`
	Dome      bool     `json:"dome"`
	Severity  Severity `json:"severity"`
}
