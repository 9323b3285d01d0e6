package layout

import (
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/rng"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
)

var mixedShapes = []settings.BuildingShape{settings.ShapeRectangle, settings.ShapeL, settings.ShapeT}

// pickShape resolves the mixed strategy to a concrete shape. One draw is
// always taken so the stream does not depend on the strategy.
func pickShape(strategy settings.BuildingShape, r *rng.Rand) settings.BuildingShape {
	i := r.Intn(len(mixedShapes))
	if strategy == settings.ShapeMixed {
		return mixedShapes[i]
	}
	return strategy
}

// outline returns the local footprint for shape: X across the width, Y
// toward the front, centered on the origin. Vertices are CCW.
func outline(shape settings.BuildingShape, w, d float64) []geo.Point2D {
	hw, hd := w/2, d/2
	switch shape {
	case settings.ShapeL:
		// Full-width front range with a rear wing on the left.
		return []geo.Point2D{
			geo.Pt(-hw, -hd), geo.Pt(0, -hd), geo.Pt(0, 0),
			geo.Pt(hw, 0), geo.Pt(hw, hd), geo.Pt(-hw, hd),
		}
	case settings.ShapeT:
		// Full-width front range with a centered rear stem a third as wide.
		sw := w / 6
		return []geo.Point2D{
			geo.Pt(-sw, -hd), geo.Pt(sw, -hd), geo.Pt(sw, 0), geo.Pt(hw, 0),
			geo.Pt(hw, hd), geo.Pt(-hw, hd), geo.Pt(-hw, 0), geo.Pt(-sw, 0),
		}
	}
	return []geo.Point2D{
		geo.Pt(-hw, -hd), geo.Pt(hw, -hd), geo.Pt(hw, hd), geo.Pt(-hw, hd),
	}
}

// Footprint places a shape of w by d meters at center with its front
// facing bearingDeg.
func Footprint(shape settings.BuildingShape, center geo.Point2D, w, d, bearingDeg float64) geo.Polygon {
	return geo.OrientedShape(center, bearingDeg, outline(shape, w, d))
}
