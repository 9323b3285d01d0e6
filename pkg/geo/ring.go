package geo

import (
	"errors"
	"fmt"
)

// Boundary validation errors.
var (
	ErrTooFewPoints     = errors.New("ring needs at least 3 distinct points")
	ErrOutOfRange       = errors.New("coordinate out of range")
	ErrSelfIntersecting = errors.New("ring is self-intersecting")
	ErrUnrepairable     = errors.New("ring cannot be repaired")
)

// NormalizeRing closes r, strips consecutive duplicate points and checks
// coordinate ranges. The result has at least 3 distinct points and at
// least 4 entries. Normalizing an already normalized ring returns an equal
// ring.
func NormalizeRing(r Ring) (Ring, error) {
	out := make(Ring, 0, len(r)+1)
	for i, ll := range r {
		if !ll.Valid() {
			return nil, fmt.Errorf("%w: point %d %s", ErrOutOfRange, i, ll)
		}
		if len(out) > 0 && out[len(out)-1] == ll {
			continue
		}
		out = append(out, ll)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}

	distinct := make(map[LatLng]struct{}, len(out))
	for _, ll := range out {
		distinct[ll] = struct{}{}
	}
	if len(distinct) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(distinct))
	}
	return append(out, out[0]), nil
}

// SelfIntersections returns every pair of non-adjacent edges of the open
// ring that touch or cross. Edge i runs from ring[i] to ring[i+1].
func SelfIntersections(ring []Point2D) [][2]int {
	n := len(ring)
	if n < 4 {
		return nil
	}
	var out [][2]int
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			c, d := ring[j], ring[(j+1)%n]
			if segmentsCross(a, b, c, d) {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// IsSimple reports whether the open ring has no self-intersections.
func IsSimple(ring []Point2D) bool {
	return len(SelfIntersections(ring)) == 0
}

// CheckRing projects a normalized ring around its centroid and reports
// ErrSelfIntersecting when its edges cross.
func CheckRing(r Ring) error {
	proj := NewProjector(RingCentroid(r))
	poly := proj.ProjectRing(r)
	if x := SelfIntersections(poly.Vertices); len(x) > 0 {
		return fmt.Errorf("%w: edges %d and %d", ErrSelfIntersecting, x[0][0], x[0][1])
	}
	return nil
}

// RepairRing turns a self-intersecting ring into a valid one by keeping the
// shell of the largest polygon that GEOS MakeValid produces. A ring that is
// already simple is returned unchanged.
func RepairRing(r Ring) (Ring, error) {
	norm, err := NormalizeRing(r)
	if err != nil {
		return nil, err
	}
	if CheckRing(norm) == nil {
		return norm, nil
	}
	proj := NewProjector(RingCentroid(norm))
	poly := proj.ProjectRing(norm)
	shell, err := makeValidShell(poly.Vertices)
	if err != nil {
		return nil, err
	}
	if len(shell) < 3 || !IsSimple(shell) {
		return nil, ErrUnrepairable
	}
	repaired := proj.UnprojectRing(shell)
	return NormalizeRing(repaired)
}
