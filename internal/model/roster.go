package model

// Player identifies one rosterable player (or a team defense).
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Team     string   `json:"team"`
}

// Substitution replaces a roster slot's original player with an injury
// substitute from EffectiveWeek onward. At most one substitution is active
// per slot per season.
type Substitution struct {
	EffectiveWeek int    `json:"effective_week"`
	Reason        string `json:"reason,omitempty"`
	Player        Player `json:"player"`
}

// RosterSlot binds an owner's named slot to its original player and an
// optional substitution.
type RosterSlot struct {
	ID           string        `json:"id"`
	Owner        string        `json:"owner"`
	Slot         SlotName      `json:"slot"`
	Player       Player        `json:"player"`
	Substitution *Substitution `json:"substitution,omitempty"`
}

// Substituted reports whether the slot has a substitution active for week w.
// A substitution is active iff w >= EffectiveWeek.
func (s RosterSlot) Substituted(w int) bool {
	return s.Substitution != nil && w >= s.Substitution.EffectiveWeek
}
