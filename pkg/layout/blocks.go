package layout

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// SubdivideIntoBlocks cuts the site into blocks by removing road
// corridors. Each road centerline is simplified, widened to the road
// width and subtracted from the boundary. Without roads, or when the
// boolean operations fail, the whole boundary is a single block. Parts
// smaller than MinBlockArea are dropped.
func SubdivideIntoBlocks(boundary geo.Polygon, roads []geo.Polyline, s settings.Settings) ([]Block, *validation.Report) {
	report := validation.NewReport()

	var lines []geo.Polyline
	for _, r := range roads {
		if len(r.Points) >= 2 {
			lines = append(lines, geo.Simplify(r, s.SimplifyTolerance))
		}
	}

	parts := []geo.Polygon{boundary}
	if len(lines) > 0 {
		corridors, ok := geo.BufferLines(lines, s.RoadWidth/2)
		if ok {
			if diff, ok := geo.Difference(boundary, corridors); ok {
				parts = diff
			} else {
				report.AddWarning(validation.Result{
					Level:   validation.LevelGeometry,
					Stage:   "blocks",
					Message: "subtracting road corridors failed, using the whole site as one block",
				})
			}
		} else {
			report.AddWarning(validation.Result{
				Level:   validation.LevelGeometry,
				Stage:   "blocks",
				Message: "buffering road centerlines failed, using the whole site as one block",
			})
		}
	}

	blocks := []Block{}
	dropped := 0
	for _, p := range parts {
		area := p.Area()
		if area < s.MinBlockArea {
			dropped++
			continue
		}
		blocks = append(blocks, Block{
			ID:      fmt.Sprintf("block_%03d", len(blocks)),
			Polygon: p,
			AreaM2:  area,
		})
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelLayout,
		Stage:   "blocks",
		Message: fmt.Sprintf("%d blocks, %d parts below %.0f m² dropped", len(blocks), dropped, s.MinBlockArea),
	})
	return blocks, report
}
