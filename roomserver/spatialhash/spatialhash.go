// Package spatialhash implements a uniform-grid index of line segments,
// used by the collision engine to avoid O(n^2) segment-pair scans.
package spatialhash

import (
	"fmt"

	"github.com/territoryarena/server/roomserver/geometry"
)

// DefaultCellSize is the cell edge length used when a caller has no
// configured value to hand New (tests, standalone tools).
const DefaultCellSize = 100

// ItemKind distinguishes trail segments (lethal) from territory edges
// (identity-only, never lethal on their own).
type ItemKind int

const (
	KindTrail ItemKind = iota
	KindTerritory
)

// Item is a single indexed segment, carrying enough identity for the
// collision engine to decide ownership and self-collision debounce.
type Item struct {
	Kind     ItemKind
	PlayerID string
	P1, P2   geometry.Point
	Index    int // trail array index of P1; meaningless for territory items
}

// Grid is a uniform-grid spatial hash over Items.
type Grid struct {
	cellSize float64
	buckets  map[string][]Item
}

// New creates an empty grid whose buckets span cellSize world units. A
// cellSize <= 0 falls back to DefaultCellSize.
func New(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		buckets:  make(map[string][]Item),
	}
}

func (g *Grid) cellKey(x, y float64) string {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)
	return fmt.Sprintf("%d:%d", cx, cy)
}

// Insert tags item into the cells containing both endpoints and the
// midpoint of p1->p2. This is an approximation: acceptable because
// per-tick movement is small relative to the cell size.
func (g *Grid) Insert(item Item) {
	keys := map[string]bool{
		g.cellKey(item.P1.X, item.P1.Y): true,
		g.cellKey(item.P2.X, item.P2.Y): true,
		g.cellKey((item.P1.X+item.P2.X)/2, (item.P1.Y+item.P2.Y)/2): true,
	}

	for key := range keys {
		g.buckets[key] = append(g.buckets[key], item)
	}
}

// Query returns every item indexed in the 3x3 neighborhood of cells around
// (x, y), as the concatenation of those cells' buckets: an item indexed in
// several of those cells appears once per cell.
func (g *Grid) Query(x, y float64) []Item {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)

	var results []Item
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			key := fmt.Sprintf("%d:%d", cx+dx, cy+dy)
			results = append(results, g.buckets[key]...)
		}
	}

	return results
}

// Clear drops all buckets, ready for the next tick's re-insertion.
func (g *Grid) Clear() {
	g.buckets = make(map[string][]Item)
}
