package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
)

const floorHeight = 3.0 // meters per story

// FromLayout unprojects every layout feature into geographic coordinates.
func FromLayout(l *layout.Layout) Output {
	proj := l.Projector()
	out := Output{
		Boundary:    l.Ring,
		Roads:       []Road{},
		Parcels:     []Parcel{},
		GreenSpaces: []Parcel{},
		Buildings:   []Building{},
		Trees:       []Tree{},
	}

	assembleRoads(l, proj, &out)
	assembleParcels(l, proj, &out)
	assembleBuildings(l, proj, &out)
	assembleTrees(l, proj, &out)

	out.Metadata = Metadata{
		Seed:       l.Seed,
		Density:    l.Settings.Density,
		Origin:     l.Origin,
		Bounds:     computeBounds(l.Ring),
		StopReason: string(l.Network.StopReason),
	}
	return out
}

func assembleRoads(l *layout.Layout, proj *geo.Projector, out *Output) {
	for i, r := range l.Roads {
		out.Roads = append(out.Roads, Road{
			ID:     fmt.Sprintf("road_%03d", i),
			Path:   proj.UnprojectPath(r.Points),
			WidthM: l.Settings.RoadWidth,
		})
	}
}

func assembleParcels(l *layout.Layout, proj *geo.Projector, out *Output) {
	for _, p := range l.Parcels {
		rec := Parcel{
			ID:      p.ID,
			BlockID: p.BlockID,
			Rings:   proj.UnprojectPolygon(p.Polygon),
			AreaM2:  p.AreaM2,
		}
		if p.Green {
			out.GreenSpaces = append(out.GreenSpaces, rec)
		} else {
			out.Parcels = append(out.Parcels, rec)
		}
	}
}

func assembleBuildings(l *layout.Layout, proj *geo.Projector, out *Output) {
	for _, b := range l.Buildings {
		out.Buildings = append(out.Buildings, Building{
			ID:          b.ID,
			ParcelID:    b.ParcelID,
			Type:        b.Type,
			Footprint:   proj.UnprojectRing(b.Footprint.Vertices),
			Floors:      b.Floors,
			HeightM:     float64(b.Floors) * floorHeight,
			RotationDeg: b.RotationDeg,
			Shape:       b.Shape,
		})
	}
}

func assembleTrees(l *layout.Layout, proj *geo.Projector, out *Output) {
	for _, t := range l.Trees {
		out.Trees = append(out.Trees, Tree{
			ID:       t.ID,
			Position: proj.Unproject(t.Position),
			CanopyD:  t.CanopyD,
			Height:   t.Height,
			Context:  t.Context,
		})
	}
}

// computeBounds returns the latitude/longitude box of a ring.
func computeBounds(r geo.Ring) Bounds {
	if len(r) == 0 {
		return Bounds{}
	}
	minV := geo.LatLng{Latitude: math.MaxFloat64, Longitude: math.MaxFloat64}
	maxV := geo.LatLng{Latitude: -math.MaxFloat64, Longitude: -math.MaxFloat64}
	for _, ll := range r {
		if ll.Latitude < minV.Latitude {
			minV.Latitude = ll.Latitude
		}
		if ll.Latitude > maxV.Latitude {
			maxV.Latitude = ll.Latitude
		}
		if ll.Longitude < minV.Longitude {
			minV.Longitude = ll.Longitude
		}
		if ll.Longitude > maxV.Longitude {
			maxV.Longitude = ll.Longitude
		}
	}
	return Bounds{Min: minV, Max: maxV}
}
