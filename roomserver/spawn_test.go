package roomserver

import (
	"math"
	"math/rand"
	"testing"

	"github.com/territoryarena/server/roomserver/geometry"
	"github.com/territoryarena/server/roomserver/world"
)

func TestRandomArenaPointStaysWithinRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := randomArenaPoint(rng)
		dx := p.X - world.ArenaCenter.X
		dy := p.Y - world.ArenaCenter.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > world.ArenaRadius+1e-9 {
			t.Fatalf("point %v lies outside arena radius %v (dist %v)", p, world.ArenaRadius, dist)
		}
	}
}

func TestInsideAnyTerritoryDetectsOccupant(t *testing.T) {
	w := world.New()
	w.CreatePlayer("p1", "Alice", "#fff", world.ArenaCenter.X, world.ArenaCenter.Y)

	center := geometry.Point{X: world.ArenaCenter.X, Y: world.ArenaCenter.Y}
	if !insideAnyTerritory(w, center) {
		t.Fatalf("expected player's spawn center to be reported inside its own seed territory")
	}

	far := geometry.Point{X: world.ArenaCenter.X + 2000, Y: world.ArenaCenter.Y}
	if insideAnyTerritory(w, far) {
		t.Fatalf("expected far point to not be inside any territory")
	}
}

func TestInsideAnyTerritoryIgnoresDeadPlayers(t *testing.T) {
	w := world.New()
	w.CreatePlayer("p1", "Alice", "#fff", world.ArenaCenter.X, world.ArenaCenter.Y)
	p := w.Get("p1")
	p.IsDead = true
	center := geometry.Point{X: world.ArenaCenter.X, Y: world.ArenaCenter.Y}

	if insideAnyTerritory(w, center) {
		t.Fatalf("expected dead player's territory to be excluded from occupancy check")
	}
}

func TestFindSpawnPointRejectsNearOccupiedTerritory(t *testing.T) {
	w := world.New()
	w.CreatePlayer("p1", "Alice", "#fff", world.ArenaCenter.X, world.ArenaCenter.Y)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		candidate := findSpawnPoint(w, rng, 200)
		if insideAnyTerritory(w, candidate) {
			t.Fatalf("findSpawnPoint returned a point inside an existing territory: %v", candidate)
		}
		startingTerritoryRadius := world.StartingTerritorySize/2 + 5
		rejectRadius := startingTerritoryRadius + 100
		if nearestVertexWithin(buildVertexTree(w), candidate, rejectRadius) {
			t.Fatalf("findSpawnPoint returned a point too close to an existing territory: %v", candidate)
		}
	}
}

func TestFindSpawnPointFallsBackWhenSaturated(t *testing.T) {
	w := world.New()

	// Saturate the arena with a single giant territory covering the whole
	// circle, forcing findSpawnPoint through the relaxed pass to the last
	// resort.
	w.CreatePlayer("p1", "Alice", "#fff", world.ArenaCenter.X, world.ArenaCenter.Y)
	p := w.Get("p1")
	p.Territory = hugeCircle()

	rng := rand.New(rand.NewSource(7))
	candidate := findSpawnPoint(w, rng, 5)

	// With the whole arena occupied, the relaxed pass also fails every
	// time, so findSpawnPoint must return the arena center as last resort.
	if candidate.X != world.ArenaCenter.X || candidate.Y != world.ArenaCenter.Y {
		t.Fatalf("expected last-resort arena center fallback, got %v", candidate)
	}
}

// hugeCircle returns a clockwise polygon covering the entire arena circle,
// well past ArenaRadius, so every candidate point falls inside it.
func hugeCircle() []geometry.Point {
	const n = 64
	poly := make([]geometry.Point, n)
	radius := world.ArenaRadius * 2
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		poly[i] = geometry.Point{
			X: world.ArenaCenter.X + radius*math.Cos(theta),
			Y: world.ArenaCenter.Y + radius*math.Sin(theta),
		}
	}
	return geometry.EnsureClockwise(poly)
}
