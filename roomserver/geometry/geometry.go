// Package geometry provides the pure computational-geometry primitives used
// to turn a player's trail and territory into the polygon of a capture: point
// containment, segment intersection, boundary-arc extraction and the
// capture-candidate construction itself.
package geometry

import "math"

// Point is a world-space coordinate.
type Point struct {
	X float64
	Y float64
}

// Segment is an ordered pair of points, A -> B.
type Segment struct {
	A Point
	B Point
}

// PointInPolygon reports whether p lies inside poly using the even-odd
// ray-casting rule. poly is treated as a closed ring: the edge from the last
// vertex to the first is implicit.
func PointInPolygon(p Point, poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi := poly[i]
		pj := poly[j]

		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntercept := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntercept {
				inside = !inside
			}
		}

		j = i
	}

	return inside
}

// SegmentIntersect returns the intersection point of segments A->B and C->D,
// using the standard parametric cross-product form. A zero denominator
// (parallel or collinear segments) is reported as no intersection.
func SegmentIntersect(a, b, c, d Point) (Point, bool) {
	r := Point{X: b.X - a.X, Y: b.Y - a.Y}
	s := Point{X: d.X - c.X, Y: d.Y - c.Y}

	denom := s.Y*r.X - s.X*r.Y
	if denom == 0 {
		return Point{}, false
	}

	ca := Point{X: c.X - a.X, Y: c.Y - a.Y}

	t := (s.X*ca.Y - s.Y*ca.X) / -denom
	u := (r.X*ca.Y - r.Y*ca.X) / -denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}

	return Point{X: a.X + t*r.X, Y: a.Y + t*r.Y}, true
}

// BoundaryHit describes where segment p1->p2 crosses a polygon boundary.
type BoundaryHit struct {
	Point     Point
	EdgeIndex int
}

// FindBoundaryIntersection returns the first polygon edge (in index order)
// crossed by segment p1->p2, along with the crossing point.
func FindBoundaryIntersection(p1, p2 Point, poly []Point) (BoundaryHit, bool) {
	n := len(poly)
	for i := 0; i < n; i++ {
		edgeA := poly[i]
		edgeB := poly[(i+1)%n]

		if pt, ok := SegmentIntersect(p1, p2, edgeA, edgeB); ok {
			return BoundaryHit{Point: pt, EdgeIndex: i}, true
		}
	}

	return BoundaryHit{}, false
}

// ExtractBoundaryArc walks the polygon forward from startEdge+1 up to and
// including endEdge, returning the ordered boundary vertices strictly
// between the two crossing edges (exclusive of the crossing points
// themselves, which the caller supplies separately).
func ExtractBoundaryArc(poly []Point, startEdge, endEdge int) []Point {
	n := len(poly)
	if n == 0 {
		return nil
	}

	arc := make([]Point, 0, n)
	i := (startEdge + 1) % n
	for {
		arc = append(arc, poly[i])
		if i == endEdge {
			break
		}
		i = (i + 1) % n
	}

	return arc
}

// SignedArea computes the shoelace signed area of poly. By this codebase's
// convention a positive value denotes clockwise winding.
func SignedArea(poly []Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += (b.X - a.X) * (b.Y + a.Y)
	}

	return sum / 2
}

// Area returns the absolute area enclosed by poly.
func Area(poly []Point) float64 {
	return math.Abs(SignedArea(poly))
}

// EnsureClockwise returns poly unchanged if its signed area is non-negative,
// and otherwise a reversed copy of it; poly itself is never modified.
func EnsureClockwise(poly []Point) []Point {
	if SignedArea(poly) >= 0 {
		return poly
	}

	reversed := make([]Point, len(poly))
	for i, p := range poly {
		reversed[len(poly)-1-i] = p
	}
	return reversed
}

// SimplifyPolygon greedily keeps poly[0] and any subsequent vertex whose
// squared distance from the last kept vertex exceeds tol^2.
func SimplifyPolygon(poly []Point, tol float64) []Point {
	if len(poly) == 0 {
		return nil
	}

	tolSq := tol * tol
	kept := make([]Point, 0, len(poly))
	kept = append(kept, poly[0])

	for i := 1; i < len(poly); i++ {
		last := kept[len(kept)-1]
		p := poly[i]
		dx := p.X - last.X
		dy := p.Y - last.Y
		if dx*dx+dy*dy > tolSq {
			kept = append(kept, p)
		}
	}

	return kept
}

// ComputeCapture builds the capture candidate polygon from the territory
// boundary, the trail that left and re-entered it, and the two crossing
// points/edges, and returns the larger (by absolute area) of the two
// geometrically valid candidates.
func ComputeCapture(territory, trail []Point, exitPt Point, exitEdge int, entryPt Point, entryEdge int) []Point {
	if exitEdge == entryEdge {
		loopOnly := make([]Point, 0, len(trail)+2)
		loopOnly = append(loopOnly, exitPt)
		loopOnly = append(loopOnly, trail...)
		loopOnly = append(loopOnly, entryPt)

		fullTour := append([]Point{}, loopOnly...)
		fullTour = append(fullTour, ExtractBoundaryArc(territory, exitEdge, exitEdge)...)

		if Area(fullTour) > Area(loopOnly) {
			return fullTour
		}
		return loopOnly
	}

	arcA := ExtractBoundaryArc(territory, exitEdge, entryEdge)
	arcB := ExtractBoundaryArc(territory, entryEdge, exitEdge)

	base := make([]Point, 0, len(trail)+2)
	base = append(base, exitPt)
	base = append(base, trail...)
	base = append(base, entryPt)

	candidateA := append([]Point{}, base...)
	candidateA = append(candidateA, reversePoints(arcA)...)

	candidateB := append([]Point{}, base...)
	candidateB = append(candidateB, arcB...)

	if Area(candidateA) > Area(candidateB) {
		return candidateA
	}
	return candidateB
}

func reversePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// IsFinite reports whether all coordinates of poly are finite, non-NaN
// numbers, as required of any polygon committed to a Player's territory.
func IsFinite(poly []Point) bool {
	for _, p := range poly {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// NearestVertexIndex returns the index of the polygon vertex closest to p.
// Used as the synthetic edge index for tunneling-entry fallback.
func NearestVertexIndex(p Point, poly []Point) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, v := range poly {
		d := Distance(p, v)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
