package geo

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geos"
)

// bufferQuadSegs is the number of segments used per quarter circle when
// buffering. Four keeps corridor outlines light.
const bufferQuadSegs = 4

// TryOp runs a boolean geometry operation and converts any panic raised by
// the GEOS bindings into ok=false. Empty results also report ok=false so
// callers can apply their coarser fallback.
func TryOp(op func() []Polygon) (result []Polygon, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			result, ok = nil, false
		}
	}()
	result = op()
	return result, len(result) > 0
}

// toGeos converts a planar polygon into a GEOS polygon with closed rings.
func toGeos(p Polygon) *geos.Geom {
	rings := make([][][]float64, 0, 1+len(p.Holes))
	rings = append(rings, closedCoords(p.Vertices))
	for _, h := range p.Holes {
		if len(h) >= 3 {
			rings = append(rings, closedCoords(h))
		}
	}
	return geos.NewPolygon(rings)
}

func closedCoords(ring []Point2D) [][]float64 {
	out := make([][]float64, 0, len(ring)+1)
	for _, v := range ring {
		out = append(out, []float64{v.X, v.Y})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		out = append(out, []float64{ring[0].X, ring[0].Y})
	}
	return out
}

func lineToGeos(pts []Point2D) *geos.Geom {
	coords := make([][]float64, len(pts))
	for i, v := range pts {
		coords[i] = []float64{v.X, v.Y}
	}
	return geos.NewLineString(coords)
}

// fromCoords converts a closed GEOS ring back to an open ring.
func fromCoords(coords [][]float64) []Point2D {
	n := len(coords)
	if n > 1 && coords[0][0] == coords[n-1][0] && coords[0][1] == coords[n-1][1] {
		n--
	}
	out := make([]Point2D, n)
	for i := 0; i < n; i++ {
		out[i] = Point2D{X: coords[i][0], Y: coords[i][1]}
	}
	return out
}

// fromGeos flattens any polygonal GEOS result into planar polygons, with
// outer rings CCW. Non-areal parts are dropped.
func fromGeos(g *geos.Geom) []Polygon {
	if g == nil || g.IsEmpty() {
		return nil
	}
	switch g.TypeID() {
	case geos.TypeIDPolygon:
		shell := fromCoords(g.ExteriorRing().CoordSeq().ToCoords())
		if len(shell) < 3 {
			return nil
		}
		p := Polygon{Vertices: shell}
		for i := 0; i < g.NumInteriorRings(); i++ {
			h := fromCoords(g.InteriorRing(i).CoordSeq().ToCoords())
			if len(h) >= 3 {
				p.Holes = append(p.Holes, h)
			}
		}
		return []Polygon{p.EnsureCCW()}
	case geos.TypeIDMultiPolygon, geos.TypeIDGeometryCollection:
		var out []Polygon
		for i := 0; i < g.NumGeometries(); i++ {
			out = append(out, fromGeos(g.Geometry(i))...)
		}
		return out
	}
	return nil
}

// Buffer offsets p by distance meters. Negative distances shrink it and may
// split it into several parts or nothing at all.
func Buffer(p Polygon, distance float64) ([]Polygon, bool) {
	if p.IsEmpty() {
		return nil, false
	}
	return TryOp(func() []Polygon {
		return fromGeos(toGeos(p).Buffer(distance, bufferQuadSegs))
	})
}

// BufferLines returns the union of every polyline widened by halfWidth on
// each side.
func BufferLines(lines []Polyline, halfWidth float64) ([]Polygon, bool) {
	if len(lines) == 0 || halfWidth <= 0 {
		return nil, false
	}
	return TryOp(func() []Polygon {
		var acc *geos.Geom
		for _, l := range lines {
			if len(l.Points) < 2 {
				continue
			}
			b := lineToGeos(l.Points).Buffer(halfWidth, bufferQuadSegs)
			if acc == nil {
				acc = b
			} else {
				acc = acc.Union(b)
			}
		}
		if acc == nil {
			return nil
		}
		return fromGeos(acc)
	})
}

// Union merges all polygons into a minimal set of disjoint parts.
func Union(polys []Polygon) ([]Polygon, bool) {
	if len(polys) == 0 {
		return nil, false
	}
	return TryOp(func() []Polygon {
		gs := make([]*geos.Geom, 0, len(polys))
		for _, p := range polys {
			if !p.IsEmpty() {
				gs = append(gs, toGeos(p))
			}
		}
		if len(gs) == 0 {
			return nil
		}
		return fromGeos(geos.NewCollection(geos.TypeIDMultiPolygon, gs).UnaryUnion())
	})
}

// Difference returns a minus the union of subtract.
func Difference(a Polygon, subtract []Polygon) ([]Polygon, bool) {
	if a.IsEmpty() {
		return nil, false
	}
	return TryOp(func() []Polygon {
		g := toGeos(a)
		for _, s := range subtract {
			if s.IsEmpty() {
				continue
			}
			g = g.Difference(toGeos(s))
		}
		return fromGeos(g)
	})
}

// Intersection returns the overlap of a and b.
func Intersection(a, b Polygon) ([]Polygon, bool) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, false
	}
	return TryOp(func() []Polygon {
		return fromGeos(toGeos(a).Intersection(toGeos(b)))
	})
}

// IntersectionArea returns the area shared by a and b. A failed operation
// reports zero.
func IntersectionArea(a, b Polygon) float64 {
	parts, ok := Intersection(a, b)
	if !ok {
		return 0
	}
	return TotalArea(parts)
}

// Disjoint reports whether a and b share no point. When the operation
// fails it answers false, which callers treat as a conflict.
func Disjoint(a, b Polygon) (disjoint bool) {
	if a.IsEmpty() || b.IsEmpty() {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			disjoint = false
		}
	}()
	return toGeos(a).Disjoint(toGeos(b))
}

// Largest returns the part with the greatest area.
func Largest(parts []Polygon) (Polygon, bool) {
	best, bestArea := Polygon{}, 0.0
	for _, p := range parts {
		if a := p.Area(); a > bestArea {
			best, bestArea = p, a
		}
	}
	return best, bestArea > 0
}

// TotalArea sums the area of all parts.
func TotalArea(parts []Polygon) float64 {
	total := 0.0
	for _, p := range parts {
		total += p.Area()
	}
	return total
}

// makeValidShell repairs an invalid planar ring and returns the shell of the
// largest resulting polygon.
func makeValidShell(ring []Point2D) (shell []Point2D, err error) {
	defer func() {
		if r := recover(); r != nil {
			shell, err = nil, fmt.Errorf("%w: %v", ErrUnrepairable, r)
		}
	}()
	g := geos.NewPolygon([][][]float64{closedCoords(ring)})
	if g.IsValid() {
		return ring, nil
	}
	parts := fromGeos(g.MakeValid())
	best, ok := Largest(parts)
	if !ok || math.Abs(best.SignedArea()) < 1e-9 {
		return nil, ErrUnrepairable
	}
	return best.Vertices, nil
}
