package boxscore

// Document is a provider box score, already fetched and JSON-decoded by an
// out-of-process collaborator. The extractor only consumes it.
type Document struct {
	Competitors  []Competitor  `json:"competitors"`
	Teams        []TeamStats   `json:"teams"`
	ScoringPlays []ScoringPlay `json:"scoring_plays"`
}

// Competitor maps a provider team id to its identity and final score.
type Competitor struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"display_name"`
	Score        int    `json:"score"`
	HomeAway     string `json:"home_away,omitempty"`
}

// TeamStats holds one team's categorized stat tables plus the team-level
// counters the defense line is derived from.
type TeamStats struct {
	TeamID     string     `json:"team_id"`
	Categories []Category `json:"categories"`

	// SackYardsLost is the provider's compound "sacks-yards" string for
	// sacks taken by this team's offense, e.g. "3-21".
	SackYardsLost       string `json:"sack_yards_lost"`
	InterceptionsThrown int    `json:"interceptions_thrown"`
	FumblesLost         int    `json:"fumbles_lost"`
	DefensiveTDs        int    `json:"defensive_tds"`
	Safeties            int    `json:"safeties"`
}

// Category is one labeled stat table (passing, rushing, ...) with
// per-athlete value rows positionally aligned to Labels.
type Category struct {
	Name     string        `json:"name"`
	Labels   []string      `json:"labels"`
	Athletes []AthleteLine `json:"athletes"`
}

// AthleteLine is one athlete's row in a category table.
type AthleteLine struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ScoringPlay is one free-text scoring play description.
type ScoringPlay struct {
	TeamID   string `json:"team_id"`
	TypeText string `json:"type_text"`
	Text     string `json:"text"`
}
