// Package world owns all Player records: their creation, movement
// integration, arena clamping and trail growth. It has no notion of
// capture or collision; those live in sibling packages that borrow
// Players for the duration of a tick.
package world

import (
	"math"

	"github.com/territoryarena/server/roomserver/geometry"
)

// World owns the full set of live players in a room, in creation order.
type World struct {
	players map[string]*Player
	order   []string
}

// New creates an empty World.
func New() *World {
	return &World{
		players: make(map[string]*Player),
	}
}

// CreatePlayer builds a regular 32-gon seed territory centered at (x, y)
// and registers the player under id. Speed starts at zero so the player
// does not drift before its first input.
func (w *World) CreatePlayer(id, name, color string, x, y float64) *Player {
	const sides = 32
	radius := StartingTerritorySize/2 + 5

	territory := make([]geometry.Point, sides)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		territory[i] = geometry.Point{
			X: x + radius*math.Cos(theta),
			Y: y + radius*math.Sin(theta),
		}
	}
	territory = geometry.EnsureClockwise(territory)

	p := &Player{
		ID:        id,
		Name:      name,
		Color:     color,
		X:         x,
		Y:         y,
		PrevX:     x,
		PrevY:     y,
		Territory: territory,
		Score:     int(math.Floor(geometry.Area(territory))),
	}

	w.players[id] = p
	w.order = append(w.order, id)

	return p
}

// RemovePlayer deletes id from the World.
func (w *World) RemovePlayer(id string) {
	if _, ok := w.players[id]; !ok {
		return
	}
	delete(w.players, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Get returns the player with the given id, or nil.
func (w *World) Get(id string) *Player {
	return w.players[id]
}

// Players returns all players in stable insertion order.
func (w *World) Players() []*Player {
	out := make([]*Player, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.players[id])
	}
	return out
}

// Count returns the number of live (registered) players.
func (w *World) Count() int {
	return len(w.order)
}

// SetInput updates a player's desired heading. It is a no-op on unknown or
// dead players. The first input received sets the player in motion.
func (w *World) SetInput(id string, targetAngle float64) {
	p, ok := w.players[id]
	if !ok || p.IsDead {
		return
	}

	p.TargetAngle = targetAngle
	if p.Speed == 0 {
		p.Speed = PlayerSpeed
	}
}

// Integrate advances every live player by dt seconds: steering, movement,
// arena clamping and trail growth. Dead players only age their death timer.
func (w *World) Integrate(dt float64) {
	for _, id := range w.order {
		p := w.players[id]

		if p.IsDead {
			p.DeathTimer += dt
			continue
		}

		p.Angle = math.Atan2(math.Sin(p.Angle), math.Cos(p.Angle))

		angleDiff := normalizeAngle(p.TargetAngle - p.Angle)
		p.Angle = normalizeAngle(p.Angle + angleDiff*PlayerTurnSpeed*dt)

		p.PrevX, p.PrevY = p.X, p.Y
		p.X += math.Cos(p.Angle) * p.Speed * dt
		p.Y += math.Sin(p.Angle) * p.Speed * dt

		clampToArena(p)

		if p.IsOutside {
			last := p.Trail[len(p.Trail)-1]
			cur := geometry.Point{X: p.X, Y: p.Y}
			if geometry.Distance(last, cur) >= TrailPointDistance {
				p.Trail = append(p.Trail, cur)
			}
		}

		if p.InvulnerableTimer > 0 {
			p.InvulnerableTimer -= dt
		}
	}
}

func clampToArena(p *Player) {
	dx := p.X - ArenaCenter.X
	dy := p.Y - ArenaCenter.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	maxDist := ArenaRadius - 1.0
	if dist > maxDist && dist > 0 {
		scale := maxDist / dist
		p.X = ArenaCenter.X + dx*scale
		p.Y = ArenaCenter.Y + dy*scale
	}
}

// normalizeAngle folds rad into (-pi, pi].
func normalizeAngle(rad float64) float64 {
	for rad > math.Pi {
		rad -= 2 * math.Pi
	}
	for rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}
