package scene

import (
	"encoding/json"
	"testing"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

var testOrigin = geo.LatLng{Latitude: 51.4779, Longitude: -0.0015}

func squareRequest(size float64, seed string) *spec.SiteRequest {
	h := size / 2
	proj := geo.NewProjector(testOrigin)
	ring := proj.UnprojectRing([]geo.Point2D{geo.Pt(-h, -h), geo.Pt(h, -h), geo.Pt(h, h), geo.Pt(-h, h)})
	return &spec.SiteRequest{Boundary: spec.NewBoundary(ring), Density: "medium", Seed: seed}
}

func generateLayout(t *testing.T, size float64, seed string) *layout.Layout {
	t.Helper()
	l, _, err := layout.Generate(squareRequest(size, seed))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return l
}

func TestFromLayout(t *testing.T) {
	l := generateLayout(t, 400, "scene")
	out := FromLayout(l)

	if len(out.Roads) != len(l.Roads) {
		t.Errorf("roads = %d, want %d", len(out.Roads), len(l.Roads))
	}
	if got := len(out.Parcels) + len(out.GreenSpaces); got != len(l.Parcels) {
		t.Errorf("parcels + green spaces = %d, want %d", got, len(l.Parcels))
	}
	if len(out.Buildings) != len(l.Buildings) {
		t.Errorf("buildings = %d, want %d", len(out.Buildings), len(l.Buildings))
	}
	if len(out.Trees) != len(l.Trees) {
		t.Errorf("trees = %d, want %d", len(out.Trees), len(l.Trees))
	}
	if out.Metadata.Seed != l.Seed {
		t.Errorf("seed = %d, want %d", out.Metadata.Seed, l.Seed)
	}

	b := out.Metadata.Bounds
	for _, bld := range out.Buildings {
		if !bld.Footprint.IsClosed() {
			t.Errorf("building %s footprint is not closed", bld.ID)
		}
		for _, ll := range bld.Footprint {
			if ll.Latitude < b.Min.Latitude-ContainmentToleranceDeg || ll.Latitude > b.Max.Latitude+ContainmentToleranceDeg ||
				ll.Longitude < b.Min.Longitude-ContainmentToleranceDeg || ll.Longitude > b.Max.Longitude+ContainmentToleranceDeg {
				t.Errorf("building %s vertex %v outside bounds", bld.ID, ll)
			}
		}
		if bld.HeightM != float64(bld.Floors)*floorHeight {
			t.Errorf("building %s height %.1f for %d floors", bld.ID, bld.HeightM, bld.Floors)
		}
	}
}

func TestFromLayoutEmptyCollections(t *testing.T) {
	proj := geo.NewProjector(testOrigin)
	ring := proj.UnprojectRing([]geo.Point2D{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(0, 10)})
	l, _, err := layout.Generate(&spec.SiteRequest{Boundary: spec.NewBoundary(ring)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := FromLayout(l)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"roads", "parcels", "green_spaces", "buildings", "trees"} {
		v, ok := raw[key].([]any)
		if !ok {
			t.Errorf("%s = %v, want an empty array", key, raw[key])
			continue
		}
		if key == "buildings" && len(v) != 0 {
			t.Errorf("buildings = %d, want 0", len(v))
		}
	}
}

func TestFeatureCollection(t *testing.T) {
	out := FromLayout(generateLayout(t, 300, "geojson"))
	fc := out.FeatureCollection()

	want := len(out.Roads) + len(out.Parcels) + len(out.GreenSpaces) + len(out.Buildings) + len(out.Trees)
	if len(fc.Features) != want {
		t.Fatalf("features = %d, want %d", len(fc.Features), want)
	}
	kinds := map[FeatureKind]int{}
	for _, f := range fc.Features {
		k, ok := f.Properties["kind"].(FeatureKind)
		if !ok {
			t.Fatalf("feature %v has no kind", f.Properties["id"])
		}
		kinds[k]++
	}
	if kinds[FeatureRoad] != len(out.Roads) || kinds[FeatureBuilding] != len(out.Buildings) {
		t.Errorf("kind counts = %v", kinds)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty GeoJSON")
	}
}

func TestComputeBounds(t *testing.T) {
	b := computeBounds(geo.Ring{
		{Latitude: 1, Longitude: 2}, {Latitude: 3, Longitude: -1}, {Latitude: 2, Longitude: 5}, {Latitude: 1, Longitude: 2},
	})
	if b.Min != (geo.LatLng{Latitude: 1, Longitude: -1}) || b.Max != (geo.LatLng{Latitude: 3, Longitude: 5}) {
		t.Errorf("bounds = %+v", b)
	}
}
