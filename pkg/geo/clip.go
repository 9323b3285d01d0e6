package geo

import "math"

// ClipToConvex clips the subject polygon to a convex clip polygon using
// the Sutherland-Hodgman algorithm. Holes of the subject are ignored.
// A concave subject that splits into several pieces comes back joined by
// zero-width bridges, so callers prefer Intersection and use this as the
// fallback when the boolean operation fails.
func ClipToConvex(subject, clipper Polygon) Polygon {
	if subject.IsEmpty() || clipper.IsEmpty() {
		return Polygon{}
	}
	clipper = clipper.EnsureCCW()
	output := make([]Point2D, len(subject.Vertices))
	copy(output, subject.Vertices)

	clipN := len(clipper.Vertices)
	for i := 0; i < clipN; i++ {
		if len(output) == 0 {
			return Polygon{}
		}
		edgeStart := clipper.Vertices[i]
		edgeEnd := clipper.Vertices[(i+1)%clipN]
		output = clipRingToHalfPlane(output, edgeStart, edgeEnd)
	}
	if len(output) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: output}
}

// clipToHalfPlane clips a polygon to the left side of the directed line from a to b.
func clipToHalfPlane(poly Polygon, a, b Point2D) Polygon {
	if poly.IsEmpty() {
		return Polygon{}
	}
	out := clipRingToHalfPlane(poly.Vertices, a, b)
	if len(out) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: out}
}

func clipRingToHalfPlane(input []Point2D, a, b Point2D) []Point2D {
	n := len(input)
	output := make([]Point2D, 0, n)
	for j := 0; j < n; j++ {
		current := input[j]
		next := input[(j+1)%n]
		curInside := isInsideEdge(current, a, b)
		nextInside := isInsideEdge(next, a, b)

		if curInside && nextInside {
			output = append(output, next)
		} else if curInside && !nextInside {
			if ix, ok := lineIntersection(current, next, a, b); ok {
				output = append(output, ix)
			}
		} else if !curInside && nextInside {
			if ix, ok := lineIntersection(current, next, a, b); ok {
				output = append(output, ix)
			}
			output = append(output, next)
		}
	}
	return output
}

// isInsideEdge returns true if the point is on the inside (left) of the
// directed edge from edgeStart to edgeEnd.
func isInsideEdge(p, edgeStart, edgeEnd Point2D) bool {
	return (edgeEnd.X-edgeStart.X)*(p.Y-edgeStart.Y)-
		(edgeEnd.Y-edgeStart.Y)*(p.X-edgeStart.X) >= 0
}

// lineIntersection returns the intersection point of lines (p1→p2) and (p3→p4).
func lineIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	d := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(d) < 1e-12 {
		return Point2D{}, false
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / d
	return Point2D{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}
