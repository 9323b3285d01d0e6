package layout

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/rng"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// seedAttemptsPerParcel bounds rejection sampling of Voronoi seeds.
const seedAttemptsPerParcel = 200

// SubdivideIntoParcels splits every block into parcels with a Voronoi
// diagram of seeds that favour road frontage. Pieces below MinParcelArea
// are dropped; a block that yields nothing becomes a single parcel when it
// meets the floor itself.
func SubdivideIntoParcels(blocks []Block, roads []geo.Polyline, s settings.Settings, r *rng.Rand) ([]Parcel, *validation.Report) {
	report := validation.NewReport()
	parcels := []Parcel{}
	wholeBlocks := 0

	add := func(blockID string, p geo.Polygon) {
		parcels = append(parcels, Parcel{
			ID:      fmt.Sprintf("parcel_%04d", len(parcels)),
			BlockID: blockID,
			Polygon: p,
			AreaM2:  p.Area(),
		})
	}

	for _, b := range blocks {
		count := int(math.Round(b.AreaM2 / s.TargetParcelArea))
		if count < 1 {
			count = 1
		}
		seeds := sampleSeeds(b.Polygon, roads, count, s, r)

		before := len(parcels)
		if len(seeds) > 1 {
			for _, cell := range geo.Voronoi(seeds, b.Polygon.BoundsPolygon()) {
				if cell.Polygon.IsEmpty() {
					continue
				}
				for _, piece := range clipCell(cell.Polygon, b.Polygon, report) {
					if piece.Area() >= s.MinParcelArea {
						add(b.ID, piece)
					}
				}
			}
		}
		if len(parcels) == before && b.AreaM2 >= s.MinParcelArea {
			add(b.ID, b.Polygon)
			wholeBlocks++
		}
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelLayout,
		Stage:   "parcels",
		Message: fmt.Sprintf("%d parcels from %d blocks (%d kept whole)", len(parcels), len(blocks), wholeBlocks),
	})
	return parcels, report
}

// sampleSeeds rejection-samples up to count points inside the block. A
// point at distance d from the nearest road is kept with probability
// 1/(1+d/InfluenceRadius).
func sampleSeeds(block geo.Polygon, roads []geo.Polyline, count int, s settings.Settings, r *rng.Rand) []geo.Point2D {
	mn, mx := block.BoundingBox()
	seeds := make([]geo.Point2D, 0, count)
	for attempt := 0; attempt < seedAttemptsPerParcel*count && len(seeds) < count; attempt++ {
		p := geo.Pt(r.Range(mn.X, mx.X), r.Range(mn.Y, mx.Y))
		if !block.Contains(p) {
			continue
		}
		accept := 1.0
		if _, d, ok := geo.NearestOnNetwork(roads, p); ok {
			accept = 1 / (1 + d/s.InfluenceRadius)
		}
		if r.Float64() < accept {
			seeds = append(seeds, p)
		}
	}
	return seeds
}

// clipCell intersects a convex Voronoi cell with its block. If the
// boolean operation fails on a block without holes, convex clipping is the
// fallback; otherwise the cell is skipped.
func clipCell(cell, block geo.Polygon, report *validation.Report) []geo.Polygon {
	if parts, ok := geo.Intersection(cell, block); ok {
		return parts
	}
	if len(block.Holes) > 0 {
		report.AddWarning(validation.Result{
			Level:   validation.LevelGeometry,
			Stage:   "parcels",
			Message: "cell clipping failed on a block with holes, cell skipped",
		})
		return nil
	}
	clipped := geo.ClipToConvex(block, cell)
	if clipped.IsEmpty() {
		return nil
	}
	report.AddWarning(validation.Result{
		Level:   validation.LevelGeometry,
		Stage:   "parcels",
		Message: "cell intersection failed, used convex clipping",
	})
	return []geo.Polygon{clipped.EnsureCCW()}
}
