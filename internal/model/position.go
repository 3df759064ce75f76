package model

// Position identifies a player's position group.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// Positions lists every player position.
func Positions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST}
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST:
		return true
	}
	return false
}

// SkillPosition reports whether p is a ball-carrying skill position
// (everything except K and DST).
func (p Position) SkillPosition() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	}
	return false
}

// SlotName identifies a named roster slot.
type SlotName string

const (
	SlotQB   SlotName = "QB"
	SlotRB1  SlotName = "RB1"
	SlotRB2  SlotName = "RB2"
	SlotWR1  SlotName = "WR1"
	SlotWR2  SlotName = "WR2"
	SlotTE   SlotName = "TE"
	SlotFlex SlotName = "FLEX"
	SlotK    SlotName = "K"
	SlotDST  SlotName = "DST"
)

// SlotNames lists every roster slot in display order.
func SlotNames() []SlotName {
	return []SlotName{SlotQB, SlotRB1, SlotRB2, SlotWR1, SlotWR2, SlotTE, SlotFlex, SlotK, SlotDST}
}
