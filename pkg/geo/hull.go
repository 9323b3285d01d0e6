package geo

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const hullEps = 1e-12

// liftedHull is the 3D convex hull of points lifted onto the paraboloid
// z = x² + y². Faces whose outward normal points down project to the
// Delaunay triangulation; faces pointing up project to the triangulation
// of the convex hull by farthest points.
type liftedHull struct {
	lower [][3]int
	upper [][3]int
}

// liftPoints centers and scales pts into the unit square before lifting.
// A small index-based jitter breaks ties between cocircular points.
func liftPoints(pts []Point2D) []r3.Vector {
	c := average(pts)
	extent := 0.0
	for _, p := range pts {
		extent = math.Max(extent, math.Max(math.Abs(p.X-c.X), math.Abs(p.Y-c.Y)))
	}
	if extent < 1e-12 {
		extent = 1
	}
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		x := (p.X-c.X)/extent + float64(i)*1e-9
		y := (p.Y-c.Y)/extent + float64(i)*1e-9
		out[i] = r3.Vector{X: x, Y: y, Z: x*x + y*y}
	}
	return out
}

// computeLiftedHull returns ok=false when the points are too few or
// degenerate (collinear, duplicated) to span a 3D hull.
func computeLiftedHull(pts []Point2D) (h liftedHull, ok bool) {
	if len(pts) < 4 || allCollinear(pts) {
		return liftedHull{}, false
	}
	lifted := liftPoints(pts)
	var interior r3.Vector
	for _, v := range lifted {
		interior = interior.Add(v)
	}
	interior = interior.Mul(1 / float64(len(lifted)))

	defer func() {
		if r := recover(); r != nil {
			h, ok = liftedHull{}, false
		}
	}()

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, hullEps)
	if len(ch.Indices) < 12 || len(ch.Indices)%3 != 0 {
		return liftedHull{}, false
	}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(a.Sub(interior)) < 0 {
			n = n.Mul(-1)
		}
		switch {
		case n.Z < -hullEps:
			h.lower = append(h.lower, t)
		case n.Z > hullEps:
			h.upper = append(h.upper, t)
		}
	}
	return h, len(h.lower) > 0
}

// allCollinear reports whether every point lies on one line, relative to
// the spread of the points.
func allCollinear(pts []Point2D) bool {
	a := pts[0]
	far, farDist := a, 0.0
	for _, p := range pts[1:] {
		if d := a.Distance(p); d > farDist {
			far, farDist = p, d
		}
	}
	if farDist < 1e-12 {
		return true
	}
	dir := far.Sub(a)
	for _, p := range pts {
		if math.Abs(dir.Cross(p.Sub(a))) > 1e-9*farDist*farDist {
			return false
		}
	}
	return true
}

// ConvexHullArea returns the area of the convex hull of pts. Fewer than
// three non-collinear points give zero.
func ConvexHullArea(pts []Point2D) float64 {
	switch {
	case len(pts) < 3:
		return 0
	case len(pts) == 3:
		return math.Abs(signedRingArea(pts))
	}
	h, ok := computeLiftedHull(pts)
	if !ok {
		return 0
	}
	area := 0.0
	for _, t := range h.upper {
		area += math.Abs(signedRingArea([]Point2D{pts[t[0]], pts[t[1]], pts[t[2]]}))
	}
	return area
}
