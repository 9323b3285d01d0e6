// Package routing grows the site's road network by space colonization.
package routing

import (
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/rng"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
)

// StopReason records why growth ended. Every reason is a normal
// termination.
type StopReason string

const (
	StopNoPulls   StopReason = "no_pulls"
	StopExhausted StopReason = "attractors_exhausted"
	StopStalled   StopReason = "stalled"
	StopRoundCap  StopReason = "round_cap"
)

// Network is the outcome of road growth.
type Network struct {
	Graph      Graph       `json:"graph"`
	Attractors []Attractor `json:"attractors"`
	Rounds     int         `json:"rounds"`
	StopReason StopReason  `json:"stop_reason"`
}

// Grow seeds a root at the site's interior point with evenly spaced spokes,
// scatters attractors, and grows the graph until one of the stop
// conditions is met.
func Grow(boundary geo.Polygon, s settings.Settings, r *rng.Rand) Network {
	var g Graph
	idx := newNodeIndex()

	root := boundary.InteriorPoint()
	g.AddNode(root, -1)
	idx.insert(0, root)

	for i := 0; i < s.InitialSpokes; i++ {
		bearing := 2 * math.Pi * float64(i) / float64(s.InitialSpokes)
		dir := geo.Pt(math.Sin(bearing), math.Cos(bearing))
		p := root.Add(dir.Scale(s.SegmentLength))
		if boundary.ContainsSegment(root, p) {
			n := g.AddNode(p, 0)
			idx.insert(n, p)
		}
	}

	attractors := ScatterAttractors(boundary, s, r)
	for i := range attractors {
		for _, node := range g.Nodes {
			if node.Distance(attractors[i].Position) <= s.KillRadius {
				attractors[i].Consumed = true
				break
			}
		}
	}

	threshold := math.Max(float64(s.MinRemainingAttractors), s.MinRemainingFraction*float64(len(attractors)))
	minSpacing := s.AntiClusterFactor * s.SegmentLength

	net := Network{StopReason: StopRoundCap}
	for round := 0; round < s.MaxGrowthRounds; round++ {
		net.Rounds = round + 1

		remaining := 0
		for _, a := range attractors {
			if !a.Consumed {
				remaining++
			}
		}
		if float64(remaining) < threshold {
			net.StopReason = StopExhausted
			break
		}

		pull := make([]geo.Point2D, len(g.Nodes))
		pulled := make([]bool, len(g.Nodes))
		anyPull := false
		for _, a := range attractors {
			if a.Consumed {
				continue
			}
			n, d := idx.nearest(a.Position)
			if n < 0 || d > s.InfluenceRadius || d < 1e-9 {
				continue
			}
			pull[n] = pull[n].Add(a.Position.Sub(g.Nodes[n]).Normalize())
			pulled[n] = true
			anyPull = true
		}
		if !anyPull {
			net.StopReason = StopNoPulls
			break
		}

		grew := false
		for n := range pull {
			if !pulled[n] {
				continue
			}
			dir := pull[n].Normalize()
			if dir.Length() == 0 {
				continue
			}
			from := g.Nodes[n]
			cand, ok := step(boundary, from, dir, s)
			if !ok {
				continue
			}
			if _, d := idx.nearest(cand); d <= minSpacing {
				continue
			}
			child := g.AddNode(cand, n)
			idx.insert(child, cand)
			grew = true
			for i := range attractors {
				if !attractors[i].Consumed && cand.Distance(attractors[i].Position) <= s.KillRadius {
					attractors[i].Consumed = true
				}
			}
		}
		if !grew {
			// Nothing changed, so every later round would repeat this one.
			net.StopReason = StopStalled
			break
		}
	}

	net.Graph = g
	net.Attractors = attractors
	return net
}

// step returns the new node position one segment from `from` along dir,
// falling back to a half segment when the full step leaves the site.
func step(boundary geo.Polygon, from, dir geo.Point2D, s settings.Settings) (geo.Point2D, bool) {
	cand := from.Add(dir.Scale(s.SegmentLength))
	if boundary.ContainsSegment(from, cand) {
		return cand, true
	}
	half := s.SegmentLength / 2
	if half < s.MinSegmentLength {
		return geo.Point2D{}, false
	}
	cand = from.Add(dir.Scale(half))
	if boundary.ContainsSegment(from, cand) {
		return cand, true
	}
	return geo.Point2D{}, false
}

// Roads returns the drawable road centerlines in the given style. Curved
// chains that would leave the boundary keep their straight form.
func (n Network) Roads(style settings.RoadStyle, boundary geo.Polygon) []geo.Polyline {
	lines := n.Graph.Polylines()
	if style != settings.RoadCurved {
		return lines
	}
	out := make([]geo.Polyline, len(lines))
	for i, l := range lines {
		out[i] = l
		if len(l.Points) < 3 {
			continue
		}
		smooth := geo.CatmullRomSpline(l.Points, 4, 0.5)
		if polylineInside(boundary, smooth) {
			out[i] = smooth
		}
	}
	return out
}

func polylineInside(boundary geo.Polygon, pl geo.Polyline) bool {
	for _, seg := range pl.Segments() {
		if !boundary.ContainsSegment(seg.A, seg.B) {
			return false
		}
	}
	return true
}

// Remaining returns the positions of unconsumed attractors.
func (n Network) Remaining() []geo.Point2D {
	var out []geo.Point2D
	for _, a := range n.Attractors {
		if !a.Consumed {
			out = append(out, a.Position)
		}
	}
	return out
}

// Positions returns every attractor position, consumed or not.
func (n Network) Positions() []geo.Point2D {
	out := make([]geo.Point2D, len(n.Attractors))
	for i, a := range n.Attractors {
		out[i] = a.Position
	}
	return out
}
