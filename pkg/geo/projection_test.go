package geo

import (
	"math"
	"math/rand"
	"testing"
)

func TestProjectionRoundTrip(t *testing.T) {
	origin := LatLng{Latitude: 51.5074, Longitude: -0.1278}
	proj := NewProjector(origin)
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		ll := LatLng{
			Latitude:  origin.Latitude + (r.Float64()-0.5)*0.05,
			Longitude: origin.Longitude + (r.Float64()-0.5)*0.05,
		}
		back := proj.Unproject(proj.Project(ll))
		if math.Abs(back.Latitude-ll.Latitude) > 1e-7 || math.Abs(back.Longitude-ll.Longitude) > 1e-7 {
			t.Fatalf("round trip %d: %s -> %s", i, ll, back)
		}
	}
}

func TestProjectOriginIsZero(t *testing.T) {
	origin := LatLng{Latitude: -33.86, Longitude: 151.21}
	p := NewProjector(origin).Project(origin)
	if !approxEqual(p.X, 0, 1e-9) || !approxEqual(p.Y, 0, 1e-9) {
		t.Errorf("expected origin at (0,0), got (%f,%f)", p.X, p.Y)
	}
}

func TestProjectScale(t *testing.T) {
	proj := NewProjector(LatLng{Latitude: 0, Longitude: 0})
	// One degree of latitude is about 111.2 km.
	p := proj.Project(LatLng{Latitude: 1, Longitude: 0})
	if !approxEqual(p.Y, 111195, 10) {
		t.Errorf("expected ~111195 m north, got %f", p.Y)
	}
	if !approxEqual(p.X, 0, 1e-9) {
		t.Errorf("expected no easting, got %f", p.X)
	}
	// East is positive X.
	if q := proj.Project(LatLng{Latitude: 0, Longitude: 0.001}); q.X <= 0 {
		t.Errorf("expected positive X for eastward point, got %f", q.X)
	}
}

func TestUnprojectPolygonCloses(t *testing.T) {
	proj := NewProjector(LatLng{Latitude: 40, Longitude: -74})
	poly := Polygon{
		Vertices: []Point2D{Pt(0, 0), Pt(100, 0), Pt(100, 100), Pt(0, 100)},
		Holes:    [][]Point2D{{Pt(40, 40), Pt(60, 40), Pt(60, 60)}},
	}
	rings := proj.UnprojectPolygon(poly)
	if len(rings) != 2 {
		t.Fatalf("expected 2 rings, got %d", len(rings))
	}
	for i, r := range rings {
		if !r.IsClosed() {
			t.Errorf("ring %d is not closed", i)
		}
	}
	if len(rings[0]) != 5 {
		t.Errorf("expected 5 entries in outer ring, got %d", len(rings[0]))
	}
}
