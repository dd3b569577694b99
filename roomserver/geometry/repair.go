package geometry

import (
	polyclip "github.com/akavel/polyclip-go"
)

// RepairSelfIntersections resolves a possibly self-crossing capture
// candidate (produced when a trail spirals back over itself) into a simple
// polygon by self-unioning it, keeping the largest resulting contour. An
// empty result signals a transient geometry fault to the caller.
func RepairSelfIntersections(poly []Point) []Point {
	if len(poly) < 3 {
		return nil
	}

	contour := make(polyclip.Contour, len(poly))
	for i, p := range poly {
		contour[i] = polyclip.Point{X: p.X, Y: p.Y}
	}

	subject := polyclip.Polygon{contour}
	result := subject.Construct(polyclip.UNION, polyclip.Polygon{})

	if len(result) == 0 {
		return nil
	}

	largest := result[0]
	largestArea := contourArea(largest)
	for _, c := range result[1:] {
		a := contourArea(c)
		if a > largestArea {
			largest = c
			largestArea = a
		}
	}

	if len(largest) < 3 {
		return nil
	}

	out := make([]Point, len(largest))
	for i, p := range largest {
		out[i] = Point{X: p.X, Y: p.Y}
	}

	return out
}

func contourArea(c polyclip.Contour) float64 {
	pts := make([]Point, len(c))
	for i, p := range c {
		pts[i] = Point{X: p.X, Y: p.Y}
	}
	return Area(pts)
}
