// Package bot implements the throttled AI controller that drives synthetic
// players through the same SetInput channel as remote clients.
package bot

import (
	"math"
	"math/rand"

	"github.com/territoryarena/server/roomserver/geometry"
	"github.com/territoryarena/server/roomserver/world"
)

const (
	// DefaultDecisionHz is used when a caller has no configured rate to
	// hand New (tests, standalone tools).
	DefaultDecisionHz = 6.0

	boundaryAvoidMargin = 300.0
	returningTrailLen   = 40

	wanderConeRadians = math.Pi / 3 // +-60 degrees
	cooldownMin       = 0.5
	cooldownMax       = 2.5
)

// Brain drives one bot player's inputs at a throttled decision rate.
type Brain struct {
	playerID   string
	rng        *rand.Rand
	decisionHz float64
	acc        float64
	cooldown   float64
	returning  bool
}

// New creates a Brain for the given bot player id, deciding at decisionHz
// decisions per second. A decisionHz <= 0 falls back to DefaultDecisionHz.
func New(playerID string, rng *rand.Rand, decisionHz float64) *Brain {
	if decisionHz <= 0 {
		decisionHz = DefaultDecisionHz
	}
	return &Brain{
		playerID:   playerID,
		rng:        rng,
		decisionHz: decisionHz,
		cooldown:   cooldownMin,
	}
}

// Tick advances the brain's decision accumulator by dt and, once it crosses
// the decision interval, issues at most one SetInput call against w.
func (b *Brain) Tick(dt float64, w *world.World) {
	p := w.Get(b.playerID)
	if p == nil || p.IsDead {
		return
	}

	b.acc += dt
	interval := 1.0 / b.decisionHz
	if b.acc < interval {
		return
	}
	b.acc -= interval

	b.decide(p, w)
}

func (b *Brain) decide(p *world.Player, w *world.World) {
	center := geometry.Point{X: world.ArenaCenter.X, Y: world.ArenaCenter.Y}
	cur := geometry.Point{X: p.X, Y: p.Y}
	distFromCenter := geometry.Distance(cur, center)

	if distFromCenter > world.ArenaRadius-boundaryAvoidMargin {
		heading := math.Atan2(center.Y-p.Y, center.X-p.X)
		w.SetInput(p.ID, heading)
		return
	}

	if len(p.Trail) > returningTrailLen && p.IsOutside {
		b.returning = true
		centroid := polygonCentroid(p.Territory)
		heading := math.Atan2(centroid.Y-p.Y, centroid.X-p.X)
		w.SetInput(p.ID, heading)
		return
	}

	if !p.IsOutside {
		b.returning = false
	}

	b.cooldown -= 1.0 / b.decisionHz
	if b.cooldown > 0 {
		return
	}
	b.cooldown = cooldownMin + b.rng.Float64()*(cooldownMax-cooldownMin)

	offset := (b.rng.Float64()*2 - 1) * wanderConeRadians
	w.SetInput(p.ID, p.Angle+offset)
}

func polygonCentroid(poly []geometry.Point) geometry.Point {
	if len(poly) == 0 {
		return geometry.Point{}
	}

	var sumX, sumY float64
	for _, v := range poly {
		sumX += v.X
		sumY += v.Y
	}

	n := float64(len(poly))
	return geometry.Point{X: sumX / n, Y: sumY / n}
}
