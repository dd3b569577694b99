package spatialhash

import (
	"testing"

	"github.com/territoryarena/server/roomserver/geometry"
)

func TestInsertAndQueryFindsNearbySegment(t *testing.T) {
	g := New(DefaultCellSize)
	g.Insert(Item{
		Kind:     KindTrail,
		PlayerID: "p1",
		P1:       geometry.Point{X: 50, Y: 50},
		P2:       geometry.Point{X: 60, Y: 60},
		Index:    0,
	})

	results := g.Query(55, 55)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].PlayerID != "p1" {
		t.Fatalf("expected p1, got %s", results[0].PlayerID)
	}
}

func TestQueryFarAwayFindsNothing(t *testing.T) {
	g := New(DefaultCellSize)
	g.Insert(Item{
		Kind:     KindTrail,
		PlayerID: "p1",
		P1:       geometry.Point{X: 50, Y: 50},
		P2:       geometry.Point{X: 60, Y: 60},
	})

	results := g.Query(5000, 5000)
	if len(results) != 0 {
		t.Fatalf("expected 0 results far away, got %d", len(results))
	}
}

func TestClearRemovesAllItems(t *testing.T) {
	g := New(DefaultCellSize)
	g.Insert(Item{PlayerID: "p1", P1: geometry.Point{X: 1, Y: 1}, P2: geometry.Point{X: 2, Y: 2}})
	g.Clear()

	if len(g.Query(1, 1)) != 0 {
		t.Fatalf("expected empty grid after Clear")
	}
}

func TestQueryNeighborhoodCrossesCellBoundary(t *testing.T) {
	g := New(DefaultCellSize)
	// place a segment straddling a cell boundary: it is bucketed in cells
	// 0:0 and 1:1, both inside the neighborhood of the query point, and
	// Query concatenates those buckets, so the segment comes back once per cell
	g.Insert(Item{PlayerID: "p1", P1: geometry.Point{X: 99, Y: 99}, P2: geometry.Point{X: 101, Y: 101}})

	results := g.Query(105, 105)
	if len(results) != 2 {
		t.Fatalf("expected neighborhood query to find segment across cell boundary, got %d", len(results))
	}
}
