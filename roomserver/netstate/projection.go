// Package netstate converts authoritative Player state into the compact,
// diff-friendly flat encoding sent to remote clients.
package netstate

import (
	"github.com/territoryarena/server/roomserver/geometry"
	"github.com/territoryarena/server/roomserver/world"
)

// PlayerState is the outbound per-player snapshot.
type PlayerState struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Angle    float64   `json:"angle"`
	IsDead   bool      `json:"isDead"`
	HasWon   bool      `json:"hasWon"`
	Score    int       `json:"score"`
	Territory []float64 `json:"territory"`
	Trail     []float64 `json:"trail"`

	// ResyncTerritory/ResyncTrail hint the transport layer that the flat
	// array must be re-sent in full this tick rather than diffed.
	ResyncTerritory bool `json:"resyncTerritory"`
	ResyncTrail     bool `json:"resyncTrail"`
}

// GameRoomState aggregates every live player's snapshot for one broadcast.
type GameRoomState struct {
	Players map[string]PlayerState `json:"players"`
}

// Projector tracks, per player id, the previously emitted flat-array
// lengths so it can raise resync hints exactly when the array's shape
// changed.
type Projector struct {
	lastTerritoryLen map[string]int
	lastTrailLen     map[string]int
}

// New creates an empty Projector.
func New() *Projector {
	return &Projector{
		lastTerritoryLen: make(map[string]int),
		lastTrailLen:     make(map[string]int),
	}
}

// Project builds the GameRoomState for every player in w, in insertion
// order, clearing each player's one-shot TerritoryChanged hint as it is
// consumed.
func (proj *Projector) Project(w *world.World) GameRoomState {
	players := make(map[string]PlayerState, w.Count())

	for _, p := range w.Players() {
		players[p.ID] = proj.projectPlayer(p)
	}

	return GameRoomState{Players: players}
}

func (proj *Projector) projectPlayer(p *world.Player) PlayerState {
	territory := flatten(p.Territory)
	trail := flatten(p.Trail)

	resyncTerritory := len(territory) != proj.lastTerritoryLen[p.ID] || p.TerritoryChanged
	resyncTrail := len(trail) != proj.lastTrailLen[p.ID]

	proj.lastTerritoryLen[p.ID] = len(territory)
	proj.lastTrailLen[p.ID] = len(trail)

	p.TerritoryChanged = false

	return PlayerState{
		ID:              p.ID,
		Name:            p.Name,
		Color:           p.Color,
		X:               p.X,
		Y:               p.Y,
		Angle:           p.Angle,
		IsDead:          p.IsDead,
		HasWon:          p.HasWon,
		Score:           p.Score,
		Territory:       territory,
		Trail:           trail,
		ResyncTerritory: resyncTerritory,
		ResyncTrail:     resyncTrail,
	}
}

func flatten(pts []geometry.Point) []float64 {
	if len(pts) == 0 {
		return nil
	}

	flat := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}
