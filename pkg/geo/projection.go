package geo

import (
	"math"

	"github.com/golang/geo/s1"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371008.8

// Projector maps geographic coordinates to a local equirectangular tangent
// plane in meters anchored at Origin. X grows east, Y grows north.
type Projector struct {
	Origin LatLng
	cosLat float64
}

// NewProjector returns a projector anchored at origin.
func NewProjector(origin LatLng) *Projector {
	lat := s1.Angle(origin.Latitude) * s1.Degree
	return &Projector{Origin: origin, cosLat: math.Cos(lat.Radians())}
}

// Project converts a geographic coordinate to planar meters.
func (p *Projector) Project(ll LatLng) Point2D {
	dLat := (s1.Angle(ll.Latitude-p.Origin.Latitude) * s1.Degree).Radians()
	dLng := (s1.Angle(ll.Longitude-p.Origin.Longitude) * s1.Degree).Radians()
	return Point2D{
		X: dLng * EarthRadius * p.cosLat,
		Y: dLat * EarthRadius,
	}
}

// Unproject converts planar meters back to a geographic coordinate.
func (p *Projector) Unproject(pt Point2D) LatLng {
	lat := s1.Angle(pt.Y/EarthRadius) * s1.Radian
	lng := s1.Angle(0)
	if p.cosLat > 1e-12 {
		lng = s1.Angle(pt.X/(EarthRadius*p.cosLat)) * s1.Radian
	}
	return LatLng{
		Latitude:  p.Origin.Latitude + lat.Degrees(),
		Longitude: p.Origin.Longitude + lng.Degrees(),
	}
}

// ProjectRing projects the distinct vertices of r into an open planar polygon.
func (p *Projector) ProjectRing(r Ring) Polygon {
	open := r.Open()
	pts := make([]Point2D, len(open))
	for i, ll := range open {
		pts[i] = p.Project(ll)
	}
	return Polygon{Vertices: pts}
}

// UnprojectPath converts planar points to geographic coordinates.
func (p *Projector) UnprojectPath(pts []Point2D) []LatLng {
	out := make([]LatLng, len(pts))
	for i, pt := range pts {
		out[i] = p.Unproject(pt)
	}
	return out
}

// UnprojectRing converts an open planar ring into a closed geographic ring.
func (p *Projector) UnprojectRing(pts []Point2D) Ring {
	if len(pts) == 0 {
		return Ring{}
	}
	r := make(Ring, 0, len(pts)+1)
	r = append(r, p.UnprojectPath(pts)...)
	return append(r, r[0])
}

// UnprojectPolygon converts a planar polygon into closed geographic rings,
// outer ring first.
func (p *Projector) UnprojectPolygon(poly Polygon) []Ring {
	rings := make([]Ring, 0, 1+len(poly.Holes))
	rings = append(rings, p.UnprojectRing(poly.Vertices))
	for _, h := range poly.Holes {
		rings = append(rings, p.UnprojectRing(h))
	}
	return rings
}
