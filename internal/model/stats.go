package model

import "math"

// RawStatLine accumulates one player's counting stats for a single game.
// It is built additively while scanning provider categories and scoring-play
// text, and treated as immutable once extraction returns.
type RawStatLine struct {
	Name string `json:"name"`
	Team string `json:"team,omitempty"`

	PassYards     int `json:"pass_yards"`
	PassTDs       int `json:"pass_tds"`
	Interceptions int `json:"interceptions"`

	RushYards int `json:"rush_yards"`
	RushTDs   int `json:"rush_tds"`

	Receptions int `json:"receptions"`
	RecYards   int `json:"rec_yards"`
	RecTDs     int `json:"rec_tds"`

	FumblesLost int `json:"fumbles_lost"`

	XPMade      int `json:"xp_made"`
	XPAttempted int `json:"xp_attempted"`

	// FieldGoalPoints is the aggregated point contribution of made field
	// goals, banded by distance at extraction time.
	FieldGoalPoints float64 `json:"field_goal_points"`

	TwoPointConversions int `json:"two_point_conversions"`
}

// RawDefenseLine accumulates one team's defense/special-teams stats for a
// single game. PointsAllowed comes from the final score of the opposing
// competitor, not from play-by-play.
type RawDefenseLine struct {
	Team             string `json:"team"`
	Abbreviation     string `json:"abbreviation"`
	Sacks            int    `json:"sacks"`
	Interceptions    int    `json:"interceptions"`
	FumbleRecoveries int    `json:"fumble_recoveries"`
	DefensiveTDs     int    `json:"defensive_tds"`
	Safeties         int    `json:"safeties"`
	PointsAllowed    int    `json:"points_allowed"`
}

// Category names one scoring component of a points breakdown.
type Category string

const (
	CategoryPassYards    Category = "pass_yards"
	CategoryPassTDs      Category = "pass_tds"
	CategoryInterception Category = "interceptions"
	CategoryRushYards    Category = "rush_yards"
	CategoryRushTDs      Category = "rush_tds"
	CategoryReceptions   Category = "receptions"
	CategoryRecYards     Category = "rec_yards"
	CategoryRecTDs       Category = "rec_tds"
	CategoryFumbles      Category = "fumbles_lost"
	CategoryExtraPoints  Category = "extra_points"
	CategoryFieldGoals   Category = "field_goals"
	CategoryTwoPoint     Category = "two_point"

	CategorySacks            Category = "sacks"
	CategoryDefInterceptions Category = "def_interceptions"
	CategoryFumbleRecoveries Category = "fumble_recoveries"
	CategoryDefTDs           Category = "def_tds"
	CategorySafeties         Category = "safeties"
	CategoryPointsAllowed    Category = "points_allowed"
)

// Breakdown maps each scoring category to its point contribution. Total is
// the unrounded sum of all categories.
type Breakdown struct {
	Categories map[Category]float64 `json:"categories"`
	Total      float64              `json:"total"`
}

// Add records a category contribution and keeps Total in sync. Zero
// contributions are recorded too so the category set is stable.
func (b *Breakdown) Add(c Category, points float64) {
	if b.Categories == nil {
		b.Categories = make(map[Category]float64)
	}
	b.Categories[c] += points
	b.Total += points
}

// PlayerWeekScore is the recorded fantasy score of one player for one week.
// Immutable once recorded.
type PlayerWeekScore struct {
	PlayerID  string    `json:"player_id"`
	Week      int       `json:"week"`
	Points    float64   `json:"points"`
	Breakdown Breakdown `json:"breakdown"`
}

// Round2 rounds to two decimals. Applied only at output boundaries;
// intermediate math keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
