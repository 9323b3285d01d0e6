package geo

import (
	"math"
	"sort"
)

// Polygon is a closed planar polygon. The outer ring is open (the closing
// edge is implicit); Holes are optional inner rings in the same form.
type Polygon struct {
	Vertices []Point2D   `json:"vertices"`
	Holes    [][]Point2D `json:"holes,omitempty"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of outer vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th outer edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// signedRingArea returns the shoelace area of an open ring.
// Positive for counterclockwise winding, negative for clockwise.
func signedRingArea(ring []Point2D) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X * ring[j].Y
		area -= ring[j].X * ring[i].Y
	}
	return area / 2
}

// SignedArea returns the signed area of the outer ring.
func (p Polygon) SignedArea() float64 {
	return signedRingArea(p.Vertices)
}

// Area returns the unsigned area of the polygon with holes removed.
func (p Polygon) Area() float64 {
	a := math.Abs(p.SignedArea())
	for _, h := range p.Holes {
		a -= math.Abs(signedRingArea(h))
	}
	if a < 0 {
		return 0
	}
	return a
}

// IsCounterClockwise returns true if outer vertices are in CCW order.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// EnsureCCW returns the polygon with its outer ring in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed outer vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev, Holes: p.Holes}
}

// ringCentroid returns the area-weighted centroid terms of a ring.
func ringCentroid(ring []Point2D) (cx, cy, a float64) {
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
		cx += (ring[i].X + ring[j].X) * cross
		cy += (ring[i].Y + ring[j].Y) * cross
	}
	return cx, cy, signedRingArea(ring)
}

func average(pts []Point2D) Point2D {
	if len(pts) == 0 {
		return Point2D{}
	}
	sum := Point2D{}
	for _, v := range pts {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(pts)))
}

// Centroid returns the area centroid of the polygon, holes subtracted.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n < 3 {
		return average(p.Vertices)
	}
	cx, cy, a := ringCentroid(p.Vertices)
	sign := 1.0
	if a < 0 {
		sign = -1
	}
	cx, cy, a = cx*sign, cy*sign, a*sign
	for _, h := range p.Holes {
		hx, hy, ha := ringCentroid(h)
		hs := 1.0
		if ha < 0 {
			hs = -1
		}
		cx -= hx * hs
		cy -= hy * hs
		a -= ha * hs
	}
	if math.Abs(a) < 1e-12 {
		// Degenerate: return average.
		return average(p.Vertices)
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point2D, Point2D) {
	if len(p.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return minP, maxP
}

// BoundsPolygon returns the bounding box as a CCW rectangle.
func (p Polygon) BoundsPolygon() Polygon {
	mn, mx := p.BoundingBox()
	return NewPolygon(mn, Pt(mx.X, mn.Y), mx, Pt(mn.X, mx.Y))
}

// ringContains tests a point against a single open ring using ray casting.
func ringContains(ring []Point2D, pt Point2D) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := ring[i]
		vj := ring[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Contains returns true if the point is inside the outer ring and outside
// every hole.
func (p Polygon) Contains(pt Point2D) bool {
	if !ringContains(p.Vertices, pt) {
		return false
	}
	for _, h := range p.Holes {
		if ringContains(h, pt) {
			return false
		}
	}
	return true
}

// ContainsPolygon reports whether every vertex of q lies inside p or within
// tol meters of p's boundary. It is a vertex test, which is the practical
// approximation of full polygon-in-polygon containment.
func (p Polygon) ContainsPolygon(q Polygon, tol float64) bool {
	if p.IsEmpty() || q.IsEmpty() {
		return false
	}
	for _, v := range q.Vertices {
		if p.Contains(v) {
			continue
		}
		if _, d := p.NearestBoundaryPoint(v); d > tol {
			return false
		}
	}
	return true
}

// NearestBoundaryPoint returns the closest point on any ring of p to pt.
func (p Polygon) NearestBoundaryPoint(pt Point2D) (Point2D, float64) {
	best, bestDist := Point2D{}, math.MaxFloat64
	rings := append([][]Point2D{p.Vertices}, p.Holes...)
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			q, d := nearestPointOnSegment(pt, ring[i], ring[(i+1)%n])
			if d < bestDist {
				best, bestDist = q, d
			}
		}
	}
	return best, bestDist
}

// Perimeter returns the outer perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

// ScaleAround returns p scaled by factor around center. Holes scale too.
func (p Polygon) ScaleAround(center Point2D, factor float64) Polygon {
	scale := func(ring []Point2D) []Point2D {
		out := make([]Point2D, len(ring))
		for i, v := range ring {
			out[i] = center.Add(v.Sub(center).Scale(factor))
		}
		return out
	}
	out := Polygon{Vertices: scale(p.Vertices)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, scale(h))
	}
	return out
}

// OrientedRect returns a width x depth rectangle centered on center. The
// depth axis points along bearingDeg (degrees clockwise from north), so the
// building front faces that bearing. Vertices are CCW.
func OrientedRect(center Point2D, width, depth, bearingDeg float64) Polygon {
	return OrientedShape(center, bearingDeg, []Point2D{
		Pt(-width/2, -depth/2),
		Pt(width/2, -depth/2),
		Pt(width/2, depth/2),
		Pt(-width/2, depth/2),
	})
}

// OrientedShape places a local outline (X across, Y toward the front)
// at center, rotated so local +Y points along bearingDeg.
func OrientedShape(center Point2D, bearingDeg float64, local []Point2D) Polygon {
	// Local +Y is north at bearing 0; a clockwise compass bearing is a
	// negative mathematical rotation.
	theta := -bearingDeg * math.Pi / 180
	out := make([]Point2D, len(local))
	for i, v := range local {
		out[i] = v.Rotate(theta).Add(center)
	}
	return Polygon{Vertices: out}
}

// ContainsSegment reports whether both endpoints of ab lie inside p and the
// segment crosses no ring of p.
func (p Polygon) ContainsSegment(a, b Point2D) bool {
	if !p.Contains(a) || !p.Contains(b) {
		return false
	}
	rings := append([][]Point2D{p.Vertices}, p.Holes...)
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			if segmentsCross(a, b, ring[i], ring[(i+1)%n]) {
				return false
			}
		}
	}
	return true
}

// InteriorPoint returns a point inside p: the centroid when it is inside,
// otherwise the middle of the widest horizontal span through the centroid.
func (p Polygon) InteriorPoint() Point2D {
	c := p.Centroid()
	if p.Contains(c) || p.IsEmpty() {
		return c
	}
	var xs []float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		if (a.Y > c.Y) != (b.Y > c.Y) {
			xs = append(xs, a.X+(c.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
	}
	sort.Float64s(xs)
	best, bestW := c, -1.0
	for i := 0; i+1 < len(xs); i += 2 {
		if w := xs[i+1] - xs[i]; w > bestW {
			best, bestW = Pt((xs[i]+xs[i+1])/2, c.Y), w
		}
	}
	return best
}
