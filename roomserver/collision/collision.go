// Package collision implements the per-tick trail-crossing kill policy:
// foreign trails kill their owner when crossed, and a player's own old
// trail segments kill them if crossed outside the exit-point grace radius.
package collision

import (
	"github.com/territoryarena/server/roomserver/geometry"
	"github.com/territoryarena/server/roomserver/spatialhash"
	"github.com/territoryarena/server/roomserver/world"
)

const (
	// selfExitGraceRadius permits legitimate loop closures that pass back
	// near the trail's own starting point without self-killing.
	selfExitGraceRadius = 100.0

	// selfHeadDebounce ignores the most recent segments "attached to the
	// body" to tolerate sharp turns and boundary-sliding.
	selfHeadDebounce = 20
)

// Engine re-populates a SpatialHash each tick and resolves trail crossings
// against it.
type Engine struct {
	grid *spatialhash.Grid
}

// New creates a collision Engine with its own spatial hash, gridded at
// cellSize world units.
func New(cellSize float64) *Engine {
	return &Engine{grid: spatialhash.New(cellSize)}
}

// Run re-indexes every live player's trail and territory edges, then checks
// each non-victorious, non-grace player for fatal crossings.
func (e *Engine) Run(w *world.World) {
	e.grid.Clear()

	players := w.Players()

	for _, p := range players {
		if p.IsDead {
			continue
		}
		e.indexPlayer(p)
	}

	for _, p := range players {
		if p.IsDead || p.HasWon || p.JustCaptured {
			continue
		}
		e.checkCollisions(p, players)
	}
}

func (e *Engine) indexPlayer(p *world.Player) {
	for i := 0; i+1 < len(p.Trail); i++ {
		e.grid.Insert(spatialhash.Item{
			Kind:     spatialhash.KindTrail,
			PlayerID: p.ID,
			P1:       p.Trail[i],
			P2:       p.Trail[i+1],
			Index:    i,
		})
	}

	n := len(p.Territory)
	for i := 0; i < n; i++ {
		e.grid.Insert(spatialhash.Item{
			Kind:     spatialhash.KindTerritory,
			PlayerID: p.ID,
			P1:       p.Territory[i],
			P2:       p.Territory[(i+1)%n],
		})
	}
}

func (e *Engine) checkCollisions(p *world.Player, players []*world.Player) {
	prev := geometry.Point{X: p.PrevX, Y: p.PrevY}
	cur := geometry.Point{X: p.X, Y: p.Y}

	currentHead := len(p.Trail) - 1

	for _, item := range e.grid.Query(p.X, p.Y) {
		if item.Kind != spatialhash.KindTrail {
			continue
		}

		if item.PlayerID != p.ID {
			if _, hit := geometry.SegmentIntersect(prev, cur, item.P1, item.P2); hit {
				killPlayer(findPlayer(players, item.PlayerID))
			}
			continue
		}

		// Self-trail crossing.
		if geometry.PointInPolygon(cur, p.Territory) {
			continue
		}
		if geometry.Distance(cur, p.ExitPoint) < selfExitGraceRadius {
			continue
		}
		if currentHead-item.Index <= selfHeadDebounce {
			continue
		}

		if _, hit := geometry.SegmentIntersect(prev, cur, item.P1, item.P2); hit {
			killPlayer(p)
			return
		}
	}
}

func findPlayer(players []*world.Player, id string) *world.Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func killPlayer(p *world.Player) {
	if p == nil || p.IsDead {
		return
	}
	p.IsDead = true
	p.Trail = nil
	p.IsOutside = false
	p.DeathTimer = 0
}
