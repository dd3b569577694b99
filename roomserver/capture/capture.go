// Package capture implements the exit/entry/loop-closure state machine that
// turns a player's trail back into grown territory.
package capture

import (
	"math"

	"github.com/territoryarena/server/roomserver/geometry"
	"github.com/territoryarena/server/roomserver/world"
)

const (
	minTerritoryVertices = 4
	minTerritoryArea     = 100.0

	simplifyTolerance         = 1.0
	simplifyEscalatedTolerance = 2.0
	simplifyVertexBudget      = 400

	loopCloseTrailMin  = 10
	loopCloseRadius    = 80.0
	entryTrailDebounce = 2
)

// Engine runs the per-tick capture detection and commit pipeline for every
// live player in a World.
type Engine struct{}

// New creates a capture Engine.
func New() *Engine {
	return &Engine{}
}

// Run processes capture detection for every live player. It must run after
// World.Integrate and before the collision engine.
func (e *Engine) Run(w *world.World) {
	for _, p := range w.Players() {
		if p.IsDead {
			continue
		}

		p.JustCaptured = false

		cur := geometry.Point{X: p.X, Y: p.Y}
		prev := geometry.Point{X: p.PrevX, Y: p.PrevY}

		isInside := geometry.PointInPolygon(cur, p.Territory)

		switch {
		case !p.IsOutside && !isInside && p.InvulnerableTimer <= 0:
			e.handleExit(p, prev, cur)

		case p.IsOutside && isInside:
			e.handleEntry(p, prev, cur)

		case p.IsOutside && !isInside && len(p.Trail) > loopCloseTrailMin:
			e.handleLoopClose(p, cur)
		}

		e.checkVictory(p)
	}
}

func (e *Engine) handleExit(p *world.Player, prev, cur geometry.Point) {
	hit, ok := geometry.FindBoundaryIntersection(prev, cur, p.Territory)
	if !ok {
		// Numerical-jump fallback: force-exit at prev.
		p.IsOutside = true
		p.ExitPoint = prev
		p.ExitEdgeIndex = 0
		p.Trail = []geometry.Point{prev}
		return
	}

	p.IsOutside = true
	p.ExitPoint = hit.Point
	p.ExitEdgeIndex = hit.EdgeIndex
	p.Trail = []geometry.Point{hit.Point}
}

func (e *Engine) handleEntry(p *world.Player, prev, cur geometry.Point) {
	hit, ok := geometry.FindBoundaryIntersection(prev, cur, p.Territory)
	if !ok {
		// Tunneling fallback: synthesize a hit at cur against the nearest
		// boundary vertex.
		hit = geometry.BoundaryHit{
			Point:     cur,
			EdgeIndex: geometry.NearestVertexIndex(cur, p.Territory),
		}
	}

	defer e.clearTrailState(p)

	if len(p.Trail) <= entryTrailDebounce {
		return
	}

	e.attemptCapture(p, hit.Point, hit.EdgeIndex, false)
}

func (e *Engine) handleLoopClose(p *world.Player, cur geometry.Point) {
	if geometry.Distance(cur, p.ExitPoint) >= loopCloseRadius {
		return
	}

	defer e.clearTrailState(p)

	e.attemptCapture(p, p.ExitPoint, p.ExitEdgeIndex, true)
}

// attemptCapture builds the capture candidate, validates it, and commits it
// if valid. requireStrictGrowth is true only for open-space loop closure.
func (e *Engine) attemptCapture(p *world.Player, entryPt geometry.Point, entryEdge int, requireStrictGrowth bool) {
	oldArea := geometry.Area(p.Territory)

	candidate := geometry.ComputeCapture(p.Territory, p.Trail, p.ExitPoint, p.ExitEdgeIndex, entryPt, entryEdge)

	if !isSimplePolygon(candidate) {
		repaired := geometry.RepairSelfIntersections(candidate)
		if repaired == nil {
			// Transient geometry fault: capture rejected, prior
			// territory preserved.
			return
		}
		candidate = repaired
	}

	simplified := geometry.SimplifyPolygon(candidate, simplifyTolerance)
	if len(simplified) > simplifyVertexBudget {
		simplified = geometry.SimplifyPolygon(candidate, simplifyEscalatedTolerance)
	}

	simplified = geometry.EnsureClockwise(simplified)

	if !isValidTerritory(simplified) {
		return
	}

	newArea := geometry.Area(simplified)
	if requireStrictGrowth && newArea <= oldArea {
		return
	}

	p.Territory = simplified
	p.Score = int(math.Floor(newArea))
	p.TerritoryChanged = true
	p.InvulnerableTimer = world.InvulnerabilityDuration
	p.JustCaptured = true
}

func (e *Engine) clearTrailState(p *world.Player) {
	p.Trail = nil
	p.IsOutside = false
	p.ExitPoint = geometry.Point{}
}

func isValidTerritory(poly []geometry.Point) bool {
	if len(poly) < minTerritoryVertices {
		return false
	}
	if !geometry.IsFinite(poly) {
		return false
	}
	area := geometry.Area(poly)
	if math.IsNaN(area) || math.IsInf(area, 0) || area <= minTerritoryArea {
		return false
	}
	return true
}

// isSimplePolygon is a best-effort self-intersection check used only to
// decide whether a capture candidate goes through the repair pass.
func isSimplePolygon(poly []geometry.Point) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a1, a2 := poly[i], poly[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := poly[j], poly[(j+1)%n]
			if _, ok := geometry.SegmentIntersect(a1, a2, b1, b2); ok {
				return false
			}
		}
	}
	return true
}

func (e *Engine) checkVictory(p *world.Player) {
	if float64(p.Score) < world.VictoryThreshold() {
		return
	}

	p.HasWon = true
	p.IsOutside = false
	p.Trail = nil
}
