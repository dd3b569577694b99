package roomserver

import (
	"math"
	"math/rand"

	"github.com/dhconnelly/rtreego"

	"github.com/territoryarena/server/roomserver/geometry"
	"github.com/territoryarena/server/roomserver/world"
)

// vertexSpatial wraps a single territory vertex so it can be indexed in an
// rtreego.Rtree for nearest-neighbor-style rejection queries.
type vertexSpatial struct {
	point geometry.Point
	rect  *rtreego.Rect
}

func newVertexSpatial(p geometry.Point) *vertexSpatial {
	rect, _ := rtreego.NewRect([]float64{p.X, p.Y}, []float64{0.01, 0.01})
	return &vertexSpatial{point: p, rect: rect}
}

func (v *vertexSpatial) Bounds() *rtreego.Rect {
	return v.rect
}

// buildVertexTree rebuilds an in-memory rtree over every live player's
// territory vertices. Rebuilt fresh per spawn-placement attempt rather than
// maintained incrementally: territories change every capture, and spawn
// placement itself is a low-frequency (every ~2s) operation.
func buildVertexTree(w *world.World) *rtreego.Rtree {
	var spatials []rtreego.Spatial
	for _, p := range w.Players() {
		if p.IsDead {
			continue
		}
		for _, v := range p.Territory {
			spatials = append(spatials, newVertexSpatial(v))
		}
	}

	return rtreego.NewTree(2, 25, 50, spatials...)
}

// nearestVertexWithin reports whether any indexed vertex lies within
// radius of p, by querying a bounding box sized to the rejection radius
// and measuring exact distances among the candidates it returns.
func nearestVertexWithin(tree *rtreego.Rtree, p geometry.Point, radius float64) bool {
	bb, err := rtreego.NewRect(
		[]float64{p.X - radius, p.Y - radius},
		[]float64{2 * radius, 2 * radius},
	)
	if err != nil {
		return false
	}

	for _, spatial := range tree.SearchIntersect(bb) {
		v := spatial.(*vertexSpatial)
		if geometry.Distance(p, v.point) < radius {
			return true
		}
	}

	return false
}

// findSpawnPoint searches for a point uniformly distributed inside the
// arena that does not lie inside any live territory and is not too close
// to one. Falls back to relaxed acceptance, then the arena center.
func findSpawnPoint(w *world.World, rng *rand.Rand, maxAttempts int) geometry.Point {
	tree := buildVertexTree(w)
	startingTerritoryRadius := world.StartingTerritorySize/2 + 5
	rejectRadius := startingTerritoryRadius + 100

	for i := 0; i < maxAttempts; i++ {
		candidate := randomArenaPoint(rng)

		if insideAnyTerritory(w, candidate) {
			continue
		}
		if nearestVertexWithin(tree, candidate, rejectRadius) {
			continue
		}

		return candidate
	}

	// Relaxation: accept any point not inside a live territory.
	for i := 0; i < maxAttempts; i++ {
		candidate := randomArenaPoint(rng)
		if !insideAnyTerritory(w, candidate) {
			return candidate
		}
	}

	// Last resort.
	return geometry.Point{X: world.ArenaCenter.X, Y: world.ArenaCenter.Y}
}

func randomArenaPoint(rng *rand.Rand) geometry.Point {
	u := rng.Float64()
	theta := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(u) * world.ArenaRadius

	return geometry.Point{
		X: world.ArenaCenter.X + r*math.Cos(theta),
		Y: world.ArenaCenter.Y + r*math.Sin(theta),
	}
}

func insideAnyTerritory(w *world.World, p geometry.Point) bool {
	for _, pl := range w.Players() {
		if pl.IsDead {
			continue
		}
		if geometry.PointInPolygon(p, pl.Territory) {
			return true
		}
	}
	return false
}
