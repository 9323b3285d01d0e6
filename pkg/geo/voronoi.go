package geo

// VoronoiCell represents one cell in a Voronoi diagram.
type VoronoiCell struct {
	SeedIndex int     // index into the original seed array
	Seed      Point2D // the seed point
	Polygon   Polygon // the cell boundary
}

// Voronoi computes the Voronoi diagram of the given seed points,
// clipped to the given convex bounding polygon.
func Voronoi(seeds []Point2D, bounds Polygon) []VoronoiCell {
	n := len(seeds)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []VoronoiCell{{
			SeedIndex: 0,
			Seed:      seeds[0],
			Polygon:   bounds,
		}}
	}

	bounds = bounds.EnsureCCW()
	cells := make([]VoronoiCell, n)
	for i := 0; i < n; i++ {
		cells[i] = VoronoiCell{
			SeedIndex: i,
			Seed:      seeds[i],
			Polygon:   voronoiCellByHalfPlanes(i, seeds, bounds),
		}
	}
	return cells
}

// voronoiCellByHalfPlanes computes a Voronoi cell by intersecting half-planes.
// For each other seed, clip the bounds to the half-plane closer to seed[i].
func voronoiCellByHalfPlanes(seedIdx int, seeds []Point2D, bounds Polygon) Polygon {
	cell := bounds
	seed := seeds[seedIdx]
	for j, other := range seeds {
		if j == seedIdx || other == seed {
			continue
		}
		mid := MidPoint(seed, other)
		dir := other.Sub(seed).Perp()
		cell = clipToHalfPlane(cell, mid, mid.Add(dir))
		if cell.IsEmpty() {
			break
		}
	}
	return cell
}
