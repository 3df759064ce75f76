package model

import "time"

// PropCategory identifies the statistical market a sportsbook line covers.
type PropCategory string

const (
	PropPassYards  PropCategory = "pass_yards"
	PropPassTDs    PropCategory = "pass_tds"
	PropRushYards  PropCategory = "rush_yards"
	PropRecYards   PropCategory = "rec_yards"
	PropReceptions PropCategory = "receptions"
	// PropAnytimeTD is a fractional probability line, not a yardage line.
	PropAnytimeTD PropCategory = "anytime_td"
)

// PropLine is one sportsbook over/under or probability line for a player.
// Multiple lines per player are independent signals.
type PropLine struct {
	PlayerID  string       `json:"player_id"`
	Player    string       `json:"player"`
	Category  PropCategory `json:"category"`
	Value     float64      `json:"value"`
	UpdatedAt time.Time    `json:"updated_at"`
}
