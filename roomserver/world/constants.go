package world

import "math"

// World and gameplay constants, per the authoritative arena rules.
const (
	WorldWidth  = 5000
	WorldHeight = 5000

	PlayerSpeed           = 500.0
	PlayerTurnSpeed       = 12.0
	TrailPointDistance    = 10.0
	StartingTerritorySize = 300.0
	ServerTickRate        = 60

	InvulnerabilityDuration = 0.5
	BotRemovalDelay         = 1.0

	VictoryFraction = 0.99
)

var (
	ArenaCenter = struct{ X, Y float64 }{X: WorldWidth / 2, Y: WorldHeight / 2}
	ArenaRadius = float64(WorldWidth) / 2
)

// VictoryThreshold is the territory area (in world units^2) a player must
// reach to latch a win.
func VictoryThreshold() float64 {
	return VictoryFraction * math.Pi * ArenaRadius * ArenaRadius
}

// Palette enumerates the opaque display colors assigned to new players in
// round-robin order.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8B739", "#52BE80",
}
