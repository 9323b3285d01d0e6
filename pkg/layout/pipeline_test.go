package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/routing"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

var testOrigin = geo.LatLng{Latitude: 51.4779, Longitude: -0.0015}

func rect(x0, y0, x1, y1 float64) geo.Polygon {
	return geo.NewPolygon(geo.Pt(x0, y0), geo.Pt(x1, y0), geo.Pt(x1, y1), geo.Pt(x0, y1))
}

func mediumSettings(t *testing.T) settings.Settings {
	t.Helper()
	s, err := settings.Resolve(settings.DensityMedium, settings.Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return s
}

// geoRing unprojects planar vertices around testOrigin into a closed ring.
func geoRing(pts ...geo.Point2D) geo.Ring {
	return geo.NewProjector(testOrigin).UnprojectRing(pts)
}

func squareRequest(size float64, seed string) *spec.SiteRequest {
	h := size / 2
	return &spec.SiteRequest{
		Boundary: spec.NewBoundary(geoRing(geo.Pt(-h, -h), geo.Pt(h, -h), geo.Pt(h, h), geo.Pt(-h, h))),
		Density:  "medium",
		Seed:     seed,
	}
}

func generate(t *testing.T, req *spec.SiteRequest) *Layout {
	t.Helper()
	l, report, err := Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !report.Valid {
		t.Fatalf("report has errors: %s", report.Summary)
	}
	return l
}

func TestGenerateSquare(t *testing.T) {
	l := generate(t, squareRequest(500, "test-1"))

	if len(l.Network.Graph.Edges) < 1 {
		t.Errorf("expected at least 1 road edge, got %d", len(l.Network.Graph.Edges))
	}
	if len(l.Parcels) < 1 {
		t.Errorf("expected at least 1 parcel, got %d", len(l.Parcels))
	}
	if err := routing.CheckForest(l.Network.Graph); err != nil {
		t.Errorf("CheckForest: %v", err)
	}
	t.Logf("edges=%d blocks=%d parcels=%d buildings=%d trees=%d",
		len(l.Network.Graph.Edges), len(l.Blocks), len(l.Parcels), len(l.Buildings), len(l.Trees))
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(t, squareRequest(500, "test-1"))
	b := generate(t, squareRequest(500, "test-1"))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("rerun differs (-first +second):\n%s", diff)
	}
}

func TestGenerateDerivesSeed(t *testing.T) {
	a := generate(t, squareRequest(300, ""))
	b := generate(t, squareRequest(300, ""))
	if a.Seed != b.Seed {
		t.Errorf("derived seeds differ: %d vs %d", a.Seed, b.Seed)
	}
	if diff := cmp.Diff(a.Buildings, b.Buildings); diff != "" {
		t.Errorf("buildings differ:\n%s", diff)
	}
}

func TestGenerateDegenerateTriangle(t *testing.T) {
	req := &spec.SiteRequest{
		Boundary: spec.NewBoundary(geoRing(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(0, 10))),
		Density:  "medium",
	}
	l := generate(t, req)
	if l.Buildings == nil || len(l.Buildings) != 0 {
		t.Errorf("buildings = %v, want empty", l.Buildings)
	}
	if l.Parcels == nil || l.Blocks == nil || l.Roads == nil || l.Trees == nil {
		t.Error("collections must be empty, not nil")
	}
}

func TestGenerateInvalidBoundary(t *testing.T) {
	req := &spec.SiteRequest{
		Boundary: spec.NewBoundary(geo.Ring{{Latitude: 1, Longitude: 1}, {Latitude: 1, Longitude: 2}}),
	}
	if _, _, err := Generate(req); err == nil {
		t.Fatal("expected error for two-point boundary")
	}
}

func TestGenerateInvalidSettings(t *testing.T) {
	req := squareRequest(200, "x")
	req.Density = "extreme"
	if _, _, err := Generate(req); err == nil {
		t.Fatal("expected error for unknown density")
	}
}

func TestGenerateRepairsBowtie(t *testing.T) {
	req := &spec.SiteRequest{
		Boundary: spec.NewBoundary(geoRing(
			geo.Pt(0, 0), geo.Pt(200, 200), geo.Pt(200, 0), geo.Pt(0, 200),
		)),
		Seed: "bowtie",
	}
	_, report, err := Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a repair warning")
	}
}

func TestGenerateInvariants(t *testing.T) {
	l := generate(t, squareRequest(400, "invariants"))
	s := l.Settings
	const tol = 1e-6

	for _, b := range l.Blocks {
		if b.AreaM2 < s.MinBlockArea {
			t.Errorf("block %s area %.1f below floor %.1f", b.ID, b.AreaM2, s.MinBlockArea)
		}
		if !l.Boundary.ContainsPolygon(b.Polygon, tol) {
			t.Errorf("block %s leaves the boundary", b.ID)
		}
	}
	for _, p := range l.Parcels {
		if p.AreaM2 < s.MinParcelArea {
			t.Errorf("parcel %s area %.1f below floor %.1f", p.ID, p.AreaM2, s.MinParcelArea)
		}
		if !l.Boundary.ContainsPolygon(p.Polygon, tol) {
			t.Errorf("parcel %s leaves the boundary", p.ID)
		}
	}

	buffered := make([]geo.Polygon, len(l.Buildings))
	for i, b := range l.Buildings {
		if !insidePolygon(l.Boundary, b.Footprint) {
			t.Errorf("building %s leaves the boundary", b.ID)
		}
		parts, ok := geo.Buffer(b.Footprint, s.Spacing/2)
		if !ok {
			t.Fatalf("buffering %s failed", b.ID)
		}
		buffered[i], _ = geo.Largest(parts)
	}
	for i := range buffered {
		for j := i + 1; j < len(buffered); j++ {
			if !geo.Disjoint(buffered[i], buffered[j]) {
				t.Errorf("buildings %s and %s violate spacing", l.Buildings[i].ID, l.Buildings[j].ID)
			}
		}
	}

	seen := map[string]bool{}
	for _, b := range l.Buildings {
		if seen[b.ParcelID] {
			t.Errorf("parcel %s has more than one building", b.ParcelID)
		}
		seen[b.ParcelID] = true
		if b.Floors < s.FloorsMin || b.Floors > s.FloorsMax {
			t.Errorf("building %s floors %d outside [%d, %d]", b.ID, b.Floors, s.FloorsMin, s.FloorsMax)
		}
	}
}

func TestGenerateGreenRatio(t *testing.T) {
	l := generate(t, squareRequest(400, "green"))
	total, green := 0.0, 0.0
	for _, p := range l.Parcels {
		total += p.AreaM2
		if p.Green {
			green += p.AreaM2
		}
	}
	want := l.Settings.EffectiveGreenspaceRatio() * total
	if green < want && len(l.GreenSpaces()) != len(l.Parcels) {
		t.Errorf("green area %.1f below target %.1f", green, want)
	}
	for _, b := range l.Buildings {
		for _, p := range l.GreenSpaces() {
			if b.ParcelID == p.ID {
				t.Errorf("building %s placed on green parcel %s", b.ID, p.ID)
			}
		}
	}
}

func TestGenerateWithZones(t *testing.T) {
	req := squareRequest(300, "zoned")
	req.BuildingType = "house_detached"
	req.Zones = []spec.ZoneDef{{
		Kind: "commercial",
		Ring: spec.NewBoundary(geoRing(geo.Pt(-200, -200), geo.Pt(200, -200), geo.Pt(200, 200), geo.Pt(-200, 200))),
	}}
	l := generate(t, req)
	if len(l.Buildings) != 0 {
		t.Errorf("house_detached placed in a commercial zone: %d buildings", len(l.Buildings))
	}

	req.Zones[0].Kind = "residential"
	l = generate(t, req)
	if len(l.Parcels) > len(l.GreenSpaces()) && len(l.Buildings) == 0 {
		t.Error("expected buildings inside a residential zone")
	}
}

func TestGenerateUnknownZoneKind(t *testing.T) {
	req := squareRequest(200, "zoned")
	req.Zones = []spec.ZoneDef{{
		Kind: "industrial",
		Ring: spec.NewBoundary(geoRing(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10))),
	}}
	_, _, err := Generate(req)
	if err == nil || !strings.Contains(err.Error(), "industrial") {
		t.Fatalf("err = %v, want unknown zone kind", err)
	}
}

func TestRunProjectsAroundCentroid(t *testing.T) {
	s := mediumSettings(t)
	ring, err := geo.NormalizeRing(geoRing(geo.Pt(0, 0), geo.Pt(200, 0), geo.Pt(200, 200), geo.Pt(0, 200)))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := Run(ring, s, nil, 1)
	c := l.Boundary.Centroid()
	if math.Abs(c.X) > 0.5 || math.Abs(c.Y) > 0.5 {
		t.Errorf("boundary centroid (%.3f, %.3f), want near origin", c.X, c.Y)
	}
	if !l.Boundary.IsCounterClockwise() {
		t.Error("boundary should be counterclockwise")
	}
}
