package scene

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// FeatureCollection returns the output as GeoJSON. Every feature carries
// its id and kind as properties.
func (o Output) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, r := range o.Roads {
		f := geojson.NewFeature(lineString(r.Path))
		f.Properties["id"] = r.ID
		f.Properties["kind"] = FeatureRoad
		f.Properties["width_m"] = r.WidthM
		fc.Append(f)
	}
	appendParcels := func(ps []Parcel, kind FeatureKind) {
		for _, p := range ps {
			f := geojson.NewFeature(polygon(p.Rings...))
			f.Properties["id"] = p.ID
			f.Properties["kind"] = kind
			f.Properties["block_id"] = p.BlockID
			f.Properties["area_m2"] = p.AreaM2
			fc.Append(f)
		}
	}
	appendParcels(o.Parcels, FeatureParcel)
	appendParcels(o.GreenSpaces, FeatureGreenSpace)

	for _, b := range o.Buildings {
		f := geojson.NewFeature(polygon(b.Footprint))
		f.Properties["id"] = b.ID
		f.Properties["kind"] = FeatureBuilding
		f.Properties["parcel_id"] = b.ParcelID
		f.Properties["type"] = b.Type
		f.Properties["floors"] = b.Floors
		f.Properties["height_m"] = b.HeightM
		f.Properties["rotation_deg"] = b.RotationDeg
		f.Properties["shape"] = b.Shape
		fc.Append(f)
	}
	for _, t := range o.Trees {
		f := geojson.NewFeature(point(t.Position))
		f.Properties["id"] = t.ID
		f.Properties["kind"] = FeatureTree
		f.Properties["context"] = t.Context
		f.Properties["height"] = t.Height
		f.Properties["canopy_diameter"] = t.CanopyD
		fc.Append(f)
	}
	return fc
}

func point(ll geo.LatLng) orb.Point {
	return orb.Point{ll.Longitude, ll.Latitude}
}

func lineString(path []geo.LatLng) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, ll := range path {
		ls[i] = point(ll)
	}
	return ls
}

func polygon(rings ...geo.Ring) orb.Polygon {
	poly := make(orb.Polygon, 0, len(rings))
	for _, r := range rings {
		ring := make(orb.Ring, len(r))
		for i, ll := range r {
			ring[i] = point(ll)
		}
		poly = append(poly, ring)
	}
	return poly
}
