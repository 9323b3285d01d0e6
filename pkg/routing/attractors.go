package routing

import (
	"math"
	"math/rand"

	"github.com/fogleman/poissondisc"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/rng"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
)

const (
	minAttractors = 50
	maxAttractors = 4000
	// Rejection sampling gives up after this many draws per attractor.
	attemptsPerAttractor = 100
	poissonCandidates    = 30
)

// Attractor is a target point that pulls road growth toward it.
type Attractor struct {
	Position geo.Point2D `json:"position"`
	Consumed bool        `json:"consumed"`
}

// AttractorCount returns the number of attractors for a site of areaM2.
func AttractorCount(areaM2, perHectare float64) int {
	n := int(math.Round(perHectare * areaM2 / 10000))
	if n < minAttractors {
		return minAttractors
	}
	if n > maxAttractors {
		return maxAttractors
	}
	return n
}

// ScatterAttractors places attractors inside boundary using the layout
// strategy from s.
func ScatterAttractors(boundary geo.Polygon, s settings.Settings, r *rng.Rand) []Attractor {
	count := AttractorCount(boundary.Area(), s.AttractorsPerHectare)
	var pts []geo.Point2D
	if s.Layout == settings.LayoutEven {
		pts = scatterEven(boundary, count, r)
	} else {
		pts = scatterUniform(boundary, count, r)
	}
	out := make([]Attractor, len(pts))
	for i, p := range pts {
		out[i] = Attractor{Position: p}
	}
	return out
}

// scatterUniform rejection-samples points in the bounding box.
func scatterUniform(boundary geo.Polygon, count int, r *rng.Rand) []geo.Point2D {
	mn, mx := boundary.BoundingBox()
	pts := make([]geo.Point2D, 0, count)
	for attempts := 0; len(pts) < count && attempts < count*attemptsPerAttractor; attempts++ {
		p := geo.Pt(r.Range(mn.X, mx.X), r.Range(mn.Y, mx.Y))
		if boundary.Contains(p) {
			pts = append(pts, p)
		}
	}
	return pts
}

// scatterEven draws a Poisson-disc set over the bounding box and keeps the
// points inside the boundary. The disc radius is sized so the box holds
// roughly count points.
func scatterEven(boundary geo.Polygon, count int, r *rng.Rand) []geo.Point2D {
	mn, mx := boundary.BoundingBox()
	boxArea := (mx.X - mn.X) * (mx.Y - mn.Y)
	if boxArea <= 0 || count == 0 {
		return nil
	}
	fill := boundary.Area() / boxArea
	radius := 0.7 * math.Sqrt(boxArea*fill/float64(count))

	poly := geo.ToOrbPolygon(boundary)
	samples := poissondisc.Sample(mn.X, mn.Y, mx.X, mx.Y, radius, poissonCandidates, rand.New(r.Source()))
	pts := make([]geo.Point2D, 0, count)
	for _, s := range samples {
		if len(pts) == count {
			break
		}
		if planar.PolygonContains(poly, orb.Point{s.X, s.Y}) {
			pts = append(pts, geo.Pt(s.X, s.Y))
		}
	}
	return pts
}
