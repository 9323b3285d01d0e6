package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Ring is a closed sequence of geographic coordinates.
type Ring []LatLng

// Valid reports whether the coordinate is finite and within
// [-90, 90] latitude and [-180, 180] longitude.
func (ll LatLng) Valid() bool {
	if math.IsNaN(ll.Latitude) || math.IsNaN(ll.Longitude) ||
		math.IsInf(ll.Latitude, 0) || math.IsInf(ll.Longitude, 0) {
		return false
	}
	return s2.LatLngFromDegrees(ll.Latitude, ll.Longitude).IsValid()
}

func (ll LatLng) String() string {
	return fmt.Sprintf("(%.7f, %.7f)", ll.Latitude, ll.Longitude)
}

// IsClosed reports whether the first and last entries are equal.
func (r Ring) IsClosed() bool {
	return len(r) > 1 && r[0] == r[len(r)-1]
}

// Open returns the ring without its closing entry.
func (r Ring) Open() []LatLng {
	if r.IsClosed() {
		return r[:len(r)-1]
	}
	return r
}

// RingCentroid returns the arithmetic mean of the distinct vertices of r.
// The ring spans a few kilometres at most, so the planar mean of degrees
// is the anchor used for projection.
func RingCentroid(r Ring) LatLng {
	pts := r.Open()
	if len(pts) == 0 {
		return LatLng{}
	}
	var lat, lng float64
	for _, p := range pts {
		lat += p.Latitude
		lng += p.Longitude
	}
	n := float64(len(pts))
	return LatLng{Latitude: lat / n, Longitude: lng / n}
}
