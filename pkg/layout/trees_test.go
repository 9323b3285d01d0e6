package layout

import (
	"testing"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

func treeFixture() ([]Parcel, []geo.Polyline, geo.Polygon) {
	parcels := []Parcel{
		{ID: "park", Polygon: rect(0, 0, 100, 100), AreaM2: 10000, Green: true},
		{ID: "lot", Polygon: rect(100, 0, 200, 100), AreaM2: 10000},
	}
	roads := []geo.Polyline{geo.NewPolyline(geo.Pt(0, 120), geo.Pt(200, 120))}
	return parcels, roads, rect(0, 0, 200, 140)
}

func TestPlaceTreesProducesOutput(t *testing.T) {
	s := mediumSettings(t)
	parcels, roads, boundary := treeFixture()
	trees, report := PlaceTrees(parcels, roads, nil, boundary, s)

	if len(trees) == 0 {
		t.Fatal("expected trees to be placed")
	}
	if !report.Valid {
		t.Fatalf("report has errors: %s", report.Summary)
	}
	contexts := make(map[string]int)
	for _, tr := range trees {
		contexts[tr.Context]++
		if !boundary.Contains(tr.Position) {
			t.Errorf("tree %s outside boundary", tr.ID)
		}
	}
	for _, ctx := range []string{"park", "street"} {
		if contexts[ctx] == 0 {
			t.Errorf("expected trees with context %q", ctx)
		}
	}
	// 100x100 park on a 20 m grid.
	if contexts["park"] != 25 {
		t.Errorf("park trees = %d, want 25", contexts["park"])
	}
}

func TestTreeDimensions(t *testing.T) {
	s := mediumSettings(t)
	parcels, roads, boundary := treeFixture()
	trees, _ := PlaceTrees(parcels, roads, nil, boundary, s)

	for _, tr := range trees {
		if tr.Height < 6 || tr.Height > 12 {
			t.Errorf("tree %s height %.1f outside range [6, 12]", tr.ID, tr.Height)
		}
		if tr.CanopyD < 4 || tr.CanopyD > 8 {
			t.Errorf("tree %s canopy %.1f outside range [4, 8]", tr.ID, tr.CanopyD)
		}
	}
}

func TestStreetTreesAvoidFootprints(t *testing.T) {
	s := mediumSettings(t)
	parcels, roads, boundary := treeFixture()
	// A footprint covering the whole south verge.
	buildings := []Building{{ID: "b", Footprint: rect(0, 110, 200, 116)}}
	trees, _ := PlaceTrees(parcels, roads, buildings, boundary, s)
	for _, tr := range trees {
		if tr.Context == "street" && tr.Position.Y < 120 {
			t.Errorf("street tree %s placed on a footprint at (%.1f, %.1f)", tr.ID, tr.Position.X, tr.Position.Y)
		}
	}
}

func TestTreesAreDeterministic(t *testing.T) {
	s := mediumSettings(t)
	parcels, roads, boundary := treeFixture()
	trees1, _ := PlaceTrees(parcels, roads, nil, boundary, s)
	trees2, _ := PlaceTrees(parcels, roads, nil, boundary, s)

	if len(trees1) != len(trees2) {
		t.Fatalf("non-deterministic: %d vs %d trees", len(trees1), len(trees2))
	}
	for i := range trees1 {
		if trees1[i].Position != trees2[i].Position {
			t.Errorf("tree %d position differs between runs", i)
			break
		}
	}
}
