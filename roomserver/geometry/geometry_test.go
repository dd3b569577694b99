package geometry

import (
	"math"
	"testing"
)

func square() []Point {
	return []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func TestPointInPolygon(t *testing.T) {
	poly := square()

	if !PointInPolygon(Point{5, 5}, poly) {
		t.Fatalf("expected center point inside square")
	}

	if PointInPolygon(Point{20, 20}, poly) {
		t.Fatalf("expected far point outside square")
	}
}

func TestPointInPolygonInvariantUnderRotationAndReversal(t *testing.T) {
	poly := square()
	p := Point{5, 5}

	base := PointInPolygon(p, poly)

	rotated := append(append([]Point{}, poly[2:]...), poly[:2]...)
	if PointInPolygon(p, rotated) != base {
		t.Fatalf("PointInPolygon not invariant under rotation")
	}

	reversed := make([]Point, len(poly))
	for i, v := range poly {
		reversed[len(poly)-1-i] = v
	}
	if PointInPolygon(p, reversed) != base {
		t.Fatalf("PointInPolygon not invariant under reversal")
	}
}

func TestSegmentIntersectBasicCross(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 10}
	c, d := Point{0, 10}, Point{10, 0}

	pt, ok := SegmentIntersect(a, b, c, d)
	if !ok {
		t.Fatalf("expected intersection")
	}
	if math.Abs(pt.X-5) > 1e-9 || math.Abs(pt.Y-5) > 1e-9 {
		t.Fatalf("expected intersection at (5,5), got %v", pt)
	}
}

func TestSegmentIntersectSymmetric(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 10}
	c, d := Point{0, 10}, Point{10, 0}

	_, ok1 := SegmentIntersect(a, b, c, d)
	_, ok2 := SegmentIntersect(b, a, c, d)
	_, ok3 := SegmentIntersect(c, d, a, b)

	if ok1 != ok2 || ok2 != ok3 {
		t.Fatalf("SegmentIntersect should agree across operand order: %v %v %v", ok1, ok2, ok3)
	}
}

func TestSegmentIntersectParallelNoIntersection(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	c, d := Point{0, 5}, Point{10, 5}

	_, ok := SegmentIntersect(a, b, c, d)
	if ok {
		t.Fatalf("parallel segments should not intersect")
	}
}

func TestFindBoundaryIntersectionFirstMatch(t *testing.T) {
	poly := square()

	hit, ok := FindBoundaryIntersection(Point{5, 5}, Point{5, -5}, poly)
	if !ok {
		t.Fatalf("expected boundary hit")
	}
	if hit.EdgeIndex != 0 {
		t.Fatalf("expected edge 0, got %d", hit.EdgeIndex)
	}
}

func TestSignedAreaAndEnsureClockwise(t *testing.T) {
	poly := square()
	area := SignedArea(poly)
	if area == 0 {
		t.Fatalf("expected nonzero signed area")
	}

	cw := EnsureClockwise(poly)
	if SignedArea(cw) < 0 {
		t.Fatalf("EnsureClockwise should produce nonnegative signed area")
	}

	idempotent := EnsureClockwise(cw)
	if len(idempotent) != len(cw) {
		t.Fatalf("EnsureClockwise should be idempotent in length")
	}
	for i := range idempotent {
		if idempotent[i] != cw[i] {
			t.Fatalf("EnsureClockwise should be idempotent pointwise")
		}
	}
}

func TestAreaConvergesAsToleranceShrinks(t *testing.T) {
	poly := []Point{}
	n := 64
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		poly = append(poly, Point{X: 100 * math.Cos(theta), Y: 100 * math.Sin(theta)})
	}

	fullArea := Area(poly)

	coarse := Area(SimplifyPolygon(poly, 50))
	fine := Area(SimplifyPolygon(poly, 0.001))

	if math.Abs(fine-fullArea) > math.Abs(coarse-fullArea) {
		t.Fatalf("finer tolerance should approximate full area at least as well: fine=%v coarse=%v full=%v", fine, coarse, fullArea)
	}
}

func TestSimplifyPolygonKeepsFirstVertex(t *testing.T) {
	poly := []Point{{0, 0}, {0.01, 0.01}, {50, 50}, {100, 100}}
	simplified := SimplifyPolygon(poly, 10)

	if simplified[0] != poly[0] {
		t.Fatalf("expected first vertex to always be kept")
	}
}

func TestComputeCaptureSameEdgePicksLargerCandidate(t *testing.T) {
	territory := square()
	trail := []Point{{5, -2}, {7, -2}}

	capture := ComputeCapture(territory, trail, Point{5, 0}, 0, Point{7, 0}, 0)
	if Area(capture) <= 0 {
		t.Fatalf("expected nonzero area capture")
	}
}

func TestComputeCaptureDifferentEdgeGrowsArea(t *testing.T) {
	territory := square()
	trail := []Point{{30, 5}}

	// exit through edge 1 (east side), entry through edge 2 (north side)
	capture := ComputeCapture(territory, trail, Point{10, 3}, 1, Point{7, 10}, 2)

	if Area(capture) <= Area(territory) {
		t.Fatalf("expected expansion capture to exceed original territory area: got %v vs %v", Area(capture), Area(territory))
	}
}

func TestIsFiniteRejectsNaN(t *testing.T) {
	poly := []Point{{0, 0}, {math.NaN(), 1}, {1, 1}}
	if IsFinite(poly) {
		t.Fatalf("expected NaN polygon to be rejected")
	}
}
