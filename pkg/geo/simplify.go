package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces a polyline with Douglas-Peucker at the given tolerance
// in meters. Endpoints are always kept.
func Simplify(pl Polyline, tolerance float64) Polyline {
	if len(pl.Points) < 3 || tolerance <= 0 {
		return pl
	}
	ls := ToOrbLineString(pl.Points)
	s, ok := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone()).(orb.LineString)
	if !ok || len(s) < 2 {
		return pl
	}
	return Polyline{Points: FromOrbPoints(s)}
}

// ToOrbLineString converts planar points to an orb line string.
func ToOrbLineString(pts []Point2D) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// ToOrbRing converts an open planar ring to a closed orb ring.
func ToOrbRing(ring []Point2D) orb.Ring {
	r := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		r = append(r, orb.Point{p.X, p.Y})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// ToOrbPolygon converts a planar polygon, holes included.
func ToOrbPolygon(p Polygon) orb.Polygon {
	poly := orb.Polygon{ToOrbRing(p.Vertices)}
	for _, h := range p.Holes {
		poly = append(poly, ToOrbRing(h))
	}
	return poly
}

// FromOrbPoints converts orb points back to planar points.
func FromOrbPoints(pts []orb.Point) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[i] = Point2D{X: p[0], Y: p[1]}
	}
	return out
}
