package layout

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Tree represents a placed tree.
type Tree struct {
	ID       string      `json:"id"`
	ParcelID string      `json:"parcel_id,omitempty"`
	Position geo.Point2D `json:"position"`
	CanopyD  float64     `json:"canopy_diameter"` // 4-8m
	Height   float64     `json:"height"`          // 6-12m
	Context  string      `json:"context"`         // "park", "street"
}

const (
	parkTreeSpacing   = 20.0 // meters between park trees (grid)
	streetTreeSpacing = 25.0 // meters between street trees
	streetTreeVerge   = 2.0  // distance from the road edge
)

// PlaceTrees plants green parcels on a grid and lines both sides of every
// road. Sizes are a fixed function of position so placement does not draw
// from the run's random stream.
func PlaceTrees(parcels []Parcel, roads []geo.Polyline, buildings []Building, boundary geo.Polygon, s settings.Settings) ([]Tree, *validation.Report) {
	report := validation.NewReport()
	trees := []Tree{}
	idx := 0

	// 1. Park trees: grid fill within green parcels.
	parks := 0
	for _, p := range parcels {
		if !p.Green {
			continue
		}
		parkTrees := placeParkTrees(p, &idx)
		parks += len(parkTrees)
		trees = append(trees, parkTrees...)
	}

	// 2. Street trees: both verges of every road, clear of footprints and
	//    other carriageways.
	streets := 0
	for _, r := range roads {
		for _, tr := range placeStreetTrees(r, s.RoadWidth/2+streetTreeVerge, &idx) {
			if !boundary.Contains(tr.Position) || onFootprint(buildings, tr.Position) {
				continue
			}
			if _, d, ok := geo.NearestOnNetwork(roads, tr.Position); ok && d < s.RoadWidth/2+streetTreeVerge/2 {
				continue
			}
			streets++
			trees = append(trees, tr)
		}
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelLayout,
		Stage:   "trees",
		Message: fmt.Sprintf("placed %d trees (park: %d, street: %d)", len(trees), parks, streets),
	})
	return trees, report
}

// placeParkTrees fills a green parcel with trees on a grid.
func placeParkTrees(p Parcel, idx *int) []Tree {
	minPt, maxPt := p.Polygon.BoundingBox()
	var trees []Tree

	for x := minPt.X + parkTreeSpacing/2; x <= maxPt.X; x += parkTreeSpacing {
		for y := minPt.Y + parkTreeSpacing/2; y <= maxPt.Y; y += parkTreeSpacing {
			pt := geo.Pt(x, y)
			if !p.Polygon.Contains(pt) {
				continue
			}
			h := 8.0 + 4.0*math.Abs(math.Sin(x*0.31+y*0.47))
			c := 5.0 + 3.0*math.Abs(math.Sin(x*0.53+y*0.29))

			trees = append(trees, Tree{
				ID:       fmt.Sprintf("tree_park_%05d", *idx),
				ParcelID: p.ID,
				Position: pt,
				CanopyD:  c,
				Height:   h,
				Context:  "park",
			})
			*idx++
		}
	}
	return trees
}

// placeStreetTrees places trees at regular intervals along a road, offset
// to both sides. The interval runs on across vertices.
func placeStreetTrees(road geo.Polyline, offset float64, idx *int) []Tree {
	var trees []Tree
	next := streetTreeSpacing / 2
	walked := 0.0
	for _, seg := range road.Segments() {
		length := seg.Length()
		if length < 1e-9 {
			continue
		}
		dir := seg.B.Sub(seg.A).Scale(1 / length)
		perp := dir.Perp()
		for ; next < walked+length; next += streetTreeSpacing {
			at := seg.A.Add(dir.Scale(next - walked))
			for _, side := range []float64{1, -1} {
				pt := at.Add(perp.Scale(side * offset))
				h := 6.0 + 4.0*math.Abs(math.Sin(pt.X*0.37+pt.Y*0.41))
				c := 4.0 + 2.0*math.Abs(math.Sin(pt.X*0.59+pt.Y*0.31))

				trees = append(trees, Tree{
					ID:       fmt.Sprintf("tree_street_%05d", *idx),
					Position: pt,
					CanopyD:  c,
					Height:   h,
					Context:  "street",
				})
				*idx++
			}
		}
		walked += length
	}
	return trees
}

func onFootprint(buildings []Building, pt geo.Point2D) bool {
	for _, b := range buildings {
		if b.Footprint.Contains(pt) {
			return true
		}
	}
	return false
}
