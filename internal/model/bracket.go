package model

// BracketRound is one round of the single-elimination playoff bracket.
// Rounds are numbered 1, 2, 3, 5: the league's week numbering skips 4
// (Pro Bowl week), so round arithmetic must never be used for sequencing.
type BracketRound int

const (
	RoundWildCard   BracketRound = 1
	RoundDivisional BracketRound = 2
	RoundConference BracketRound = 3
	RoundSuperBowl  BracketRound = 5
)

// Rounds returns the bracket rounds in play order.
func Rounds() []BracketRound {
	return []BracketRound{RoundWildCard, RoundDivisional, RoundConference, RoundSuperBowl}
}

// Valid reports whether r is a playable round.
func (r BracketRound) Valid() bool {
	switch r {
	case RoundWildCard, RoundDivisional, RoundConference, RoundSuperBowl:
		return true
	}
	return false
}

// String returns the round's display name.
func (r BracketRound) String() string {
	switch r {
	case RoundWildCard:
		return "Wild Card"
	case RoundDivisional:
		return "Divisional"
	case RoundConference:
		return "Conference"
	case RoundSuperBowl:
		return "Super Bowl"
	}
	return "Unknown"
}

// RoundsFrom returns the remaining rounds starting at from, in play order.
func RoundsFrom(from BracketRound) []BracketRound {
	all := Rounds()
	for i, r := range all {
		if r == from {
			return all[i:]
		}
	}
	return nil
}

// WinProbability is an externally supplied per-round win probability for a
// team, in [0,1].
type WinProbability struct {
	Team        string       `json:"team"`
	Round       BracketRound `json:"round"`
	Probability float64      `json:"probability"`
}

// TeamSet is a membership set keyed by normalized team abbreviation, used
// for elimination and bye lookups.
type TeamSet map[string]bool

// NewTeamSet builds a TeamSet from abbreviations.
func NewTeamSet(teams ...string) TeamSet {
	s := make(TeamSet, len(teams))
	for _, t := range teams {
		s[t] = true
	}
	return s
}
