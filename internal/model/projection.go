package model

// Source identifies which inputs produced a projection.
type Source string

const (
	SourceProp       Source = "prop"
	SourceHistorical Source = "historical"
	SourceBlended    Source = "blended"
	SourceBaseline   Source = "baseline"
)

// Confidence is the qualitative rating derived from the numeric
// confidence score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Projection is a forward-looking single-week point estimate. Derived fresh
// per request; never persisted by the engine itself.
type Projection struct {
	PlayerID string   `json:"player_id,omitempty"`
	Position Position `json:"position"`
	Week     int      `json:"week,omitempty"`

	Points     float64    `json:"points"`
	Source     Source     `json:"source"`
	Confidence Confidence `json:"confidence"`
	// Score is the numeric confidence score backing Confidence.
	Score float64 `json:"confidence_score"`

	Low  float64 `json:"low"`
	High float64 `json:"high"`

	PropWeight       float64 `json:"prop_weight"`
	HistoricalWeight float64 `json:"historical_weight"`

	// WeatherMultiplier is the factor applied by the weather adjustor,
	// 1.0 when no adjustment applied.
	WeatherMultiplier float64 `json:"weather_multiplier"`
}
