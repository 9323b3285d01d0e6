package scene2d

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
)

// Assemble2D converts a layout into a 2D scene. Spatial data keeps its
// planar coordinates; trees are also summarized by context.
func Assemble2D(l *layout.Layout) *Scene2D {
	mn, mx := l.Boundary.BoundingBox()
	sc := &Scene2D{
		Metadata: Metadata{
			Seed:    l.Seed,
			Density: string(l.Settings.Density),
			MinX:    mn.X,
			MinY:    mn.Y,
			WidthM:  mx.X - mn.X,
			HeightM: mx.Y - mn.Y,
		},
		Boundary:  toPoints(l.Boundary.Vertices),
		Roads:     make([]Road2D, 0, len(l.Roads)),
		Blocks:    make([][][2]float64, 0, len(l.Blocks)),
		Parcels:   make([]Parcel2D, 0, len(l.Parcels)),
		Buildings: make([]Building2D, 0, len(l.Buildings)),
		Trees:     make([]Tree2D, 0, len(l.Trees)),
	}

	for i, r := range l.Roads {
		sc.Roads = append(sc.Roads, Road2D{
			ID:     fmt.Sprintf("road_%03d", i),
			Points: toPoints(r.Points),
			Width:  l.Settings.RoadWidth,
		})
	}
	for _, b := range l.Blocks {
		sc.Blocks = append(sc.Blocks, toPoints(b.Polygon.Vertices))
	}
	for _, p := range l.Parcels {
		sc.Parcels = append(sc.Parcels, Parcel2D{ID: p.ID, Polygon: toPoints(p.Polygon.Vertices), Green: p.Green})
		if p.Green {
			sc.Summary.GreenSpaces++
		}
	}
	for _, b := range l.Buildings {
		sc.Buildings = append(sc.Buildings, Building2D{
			ID:      b.ID,
			Polygon: toPoints(b.Footprint.Vertices),
			Floors:  b.Floors,
			Shape:   string(b.Shape),
		})
	}
	for _, t := range l.Trees {
		sc.Trees = append(sc.Trees, Tree2D{Position: [2]float64{t.Position.X, t.Position.Y}, CanopyD: t.CanopyD})
		switch t.Context {
		case "park":
			sc.Summary.ParkTrees++
		case "street":
			sc.Summary.StreetTrees++
		}
	}

	sc.Summary.Roads = len(sc.Roads)
	sc.Summary.Blocks = len(sc.Blocks)
	sc.Summary.Parcels = len(sc.Parcels)
	sc.Summary.Buildings = len(sc.Buildings)
	return sc
}

func toPoints(pts []geo.Point2D) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
