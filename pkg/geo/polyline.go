package geo

import "math"

// Polyline is an ordered sequence of points forming a path.
type Polyline struct {
	Points []Point2D `json:"points"`
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Point2D) Polyline {
	return Polyline{Points: pts}
}

// Length returns the total arc length of the polyline.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	return total
}

// Segments returns the consecutive point pairs of the polyline.
func (pl Polyline) Segments() []Segment {
	if len(pl.Points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(pl.Points)-1)
	for i := 1; i < len(pl.Points); i++ {
		segs = append(segs, Segment{A: pl.Points[i-1], B: pl.Points[i]})
	}
	return segs
}

// NearestPoint returns the closest point on the polyline to p, and the distance.
func (pl Polyline) NearestPoint(p Point2D) (Point2D, float64) {
	if len(pl.Points) == 0 {
		return Point2D{}, math.MaxFloat64
	}
	if len(pl.Points) == 1 {
		return pl.Points[0], p.Distance(pl.Points[0])
	}

	bestPt := pl.Points[0]
	bestDist := p.Distance(pl.Points[0])

	for i := 1; i < len(pl.Points); i++ {
		pt, dist := nearestPointOnSegment(p, pl.Points[i-1], pl.Points[i])
		if dist < bestDist {
			bestDist = dist
			bestPt = pt
		}
	}
	return bestPt, bestDist
}

// NearestOnNetwork returns the closest point to p over a set of polylines.
// ok is false when lines holds no points.
func NearestOnNetwork(lines []Polyline, p Point2D) (pt Point2D, dist float64, ok bool) {
	dist = math.MaxFloat64
	for _, pl := range lines {
		if len(pl.Points) == 0 {
			continue
		}
		q, d := pl.NearestPoint(p)
		if d < dist {
			pt, dist, ok = q, d, true
		}
	}
	return pt, dist, ok
}

// nearestPointOnSegment returns the closest point on segment ab to p.
func nearestPointOnSegment(p, a, b Point2D) (Point2D, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}

// CatmullRomSpline evaluates a Catmull-Rom spline through the given control
// points. It generates samplesPerSegment intermediate points per segment.
// Tension controls tightness (0.5 = centripetal, 0.0 = uniform).
// Returns a polyline of sampled points.
func CatmullRomSpline(controlPoints []Point2D, samplesPerSegment int, tension float64) Polyline {
	n := len(controlPoints)
	if n == 0 {
		return Polyline{}
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}
	if n < 3 {
		pts := make([]Point2D, n)
		copy(pts, controlPoints)
		return Polyline{Points: pts}
	}

	// Phantom endpoints reflect the first and last segments.
	extended := make([]Point2D, n+2)
	extended[0] = controlPoints[0].Add(controlPoints[0].Sub(controlPoints[1]))
	copy(extended[1:], controlPoints)
	extended[n+1] = controlPoints[n-1].Add(controlPoints[n-1].Sub(controlPoints[n-2]))

	pts := make([]Point2D, 0, (n-1)*samplesPerSegment+1)
	for i := 1; i < n; i++ {
		p0, p1, p2, p3 := extended[i-1], extended[i], extended[i+1], extended[i+2]
		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			pts = append(pts, catmullRomPoint(p0, p1, p2, p3, t, tension))
		}
	}
	pts = append(pts, controlPoints[n-1])

	return Polyline{Points: pts}
}

// catmullRomPoint evaluates a single point on a Catmull-Rom spline segment.
func catmullRomPoint(p0, p1, p2, p3 Point2D, t, s float64) Point2D {
	t2 := t * t
	t3 := t2 * t

	x := 0.5 * ((-s*p0.X+(2-s)*p1.X+(s-2)*p2.X+s*p3.X)*t3 +
		(2*s*p0.X+(s-3)*p1.X+(3-2*s)*p2.X-s*p3.X)*t2 +
		(-s*p0.X+s*p2.X)*t +
		2*p1.X)

	y := 0.5 * ((-s*p0.Y+(2-s)*p1.Y+(s-2)*p2.Y+s*p3.Y)*t3 +
		(2*s*p0.Y+(s-3)*p1.Y+(3-2*s)*p2.Y-s*p3.Y)*t2 +
		(-s*p0.Y+s*p2.Y)*t +
		2*p1.Y)

	return Point2D{X: x, Y: y}
}
