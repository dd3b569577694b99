package world

import "github.com/territoryarena/server/roomserver/geometry"

// Player is the only mutable entity of interest to the simulation core.
type Player struct {
	ID    string
	Name  string
	Color string

	X, Y         float64
	PrevX, PrevY float64
	Angle        float64
	TargetAngle  float64
	Speed        float64

	Territory []geometry.Point
	Trail     []geometry.Point

	IsOutside     bool
	ExitPoint     geometry.Point
	ExitEdgeIndex int

	IsDead     bool
	DeathTimer float64

	InvulnerableTimer float64
	HasWon            bool
	Score             int

	TerritoryChanged bool

	// JustCaptured is a one-tick flag set by the capture engine on a
	// successful commit; the collision engine skips the player entirely
	// for the remainder of the tick it is set.
	JustCaptured bool
}

// IsBot reports whether id follows the bot id convention.
func IsBot(id string) bool {
	return len(id) >= 4 && id[:4] == "BOT_"
}
