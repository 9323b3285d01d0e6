package layout

import (
	"strings"
	"testing"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

func zoneSquare(x0, y0, x1, y1 float64) geo.Ring {
	return geoRing(geo.Pt(x0, y0), geo.Pt(x1, y0), geo.Pt(x1, y1), geo.Pt(x0, y1))
}

func TestValidatePlacementScenario(t *testing.T) {
	footprint := zoneSquare(10, 10, 20, 20)

	check := ValidatePlacement(footprint, "house_detached", []Zone{
		{Kind: ZoneCommercial, Ring: zoneSquare(0, 0, 100, 100)},
	})
	if check.IsValid {
		t.Error("house_detached in a commercial zone should be invalid")
	}
	if len(check.Reasons) == 0 || !strings.Contains(check.Reasons[0], "not compatible") {
		t.Errorf("reasons = %v, want one mentioning \"not compatible\"", check.Reasons)
	}
	if check.CompatibleZone != nil {
		t.Errorf("compatible zone = %v, want nil", *check.CompatibleZone)
	}

	check = ValidatePlacement(footprint, "house_detached", []Zone{
		{Kind: ZoneResidential, Ring: zoneSquare(0, 0, 100, 100)},
	})
	if !check.IsValid {
		t.Errorf("house_detached in a residential zone should be valid: %v", check.Reasons)
	}
	if check.CompatibleZone == nil || *check.CompatibleZone != ZoneResidential {
		t.Errorf("compatible zone = %v, want residential", check.CompatibleZone)
	}
}

func TestValidatePlacementUnzoned(t *testing.T) {
	check := ValidatePlacement(zoneSquare(10, 10, 20, 20), "shop", []Zone{
		{Kind: ZoneCommercial, Ring: zoneSquare(50, 50, 100, 100)},
	})
	if check.IsValid {
		t.Fatal("footprint outside every zone should be invalid")
	}
	if len(check.Reasons) != 1 || check.Reasons[0] != "must be placed within a zoned area" {
		t.Errorf("reasons = %v", check.Reasons)
	}

	check = ValidatePlacement(zoneSquare(10, 10, 20, 20), "shop", nil)
	if check.IsValid {
		t.Error("no zones at all should be invalid")
	}
}

func TestValidatePlacementPartialOverlap(t *testing.T) {
	check := ValidatePlacement(zoneSquare(40, 40, 60, 60), "house_detached", []Zone{
		{Kind: ZoneResidential, Ring: zoneSquare(0, 0, 50, 50)},
	})
	if check.IsValid {
		t.Error("footprint straddling the zone edge should be invalid")
	}
}

func TestValidatePlacementFirstContainingZoneDecides(t *testing.T) {
	check := ValidatePlacement(zoneSquare(10, 10, 20, 20), "office", []Zone{
		{Kind: ZoneSolar, Ring: zoneSquare(200, 200, 300, 300)},
		{Kind: ZoneCommercial, Ring: zoneSquare(0, 0, 100, 100)},
		{Kind: ZoneResidential, Ring: zoneSquare(0, 0, 100, 100)},
	})
	if !check.IsValid || *check.CompatibleZone != ZoneCommercial {
		t.Errorf("check = %+v, want valid in commercial", check)
	}
}

func TestAllowedZones(t *testing.T) {
	tests := []struct {
		buildingType string
		kind         ZoneKind
		want         bool
	}{
		{"house_detached", ZoneResidential, true},
		{"house_semi", ZoneCommercial, false},
		{"flat_block", ZoneCommercial, true},
		{"mixed_use", ZoneResidential, true},
		{"shop", ZoneResidential, false},
		{"community_hall", ZoneAmenity, true},
		{"school", ZoneResidential, true},
		{"pavilion", ZoneGreenSpace, true},
		{"pavilion", ZoneResidential, false},
		{"solar_array", ZoneSolar, true},
		{"solar_array", ZoneResidential, false},
		{"warehouse", ZoneAmenity, true},
		{"warehouse", ZoneSolar, false},
	}
	for _, tt := range tests {
		got := false
		for _, k := range AllowedZones(tt.buildingType) {
			if k == tt.kind {
				got = true
			}
		}
		if got != tt.want {
			t.Errorf("%s in %s: got %v, want %v", tt.buildingType, tt.kind, got, tt.want)
		}
	}
}

func TestParseZoneKind(t *testing.T) {
	for _, v := range []string{"residential", "commercial", "green_space", "amenity", "solar"} {
		if _, err := ParseZoneKind(v); err != nil {
			t.Errorf("ParseZoneKind(%q): %v", v, err)
		}
	}
	if _, err := ParseZoneKind("industrial"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestCheckPlacementRequest(t *testing.T) {
	req := &spec.PlacementRequest{
		Footprint:    spec.NewBoundary(zoneSquare(10, 10, 20, 20)),
		BuildingType: "house_detached",
		Zones: []spec.ZoneDef{
			{Kind: "residential", Ring: spec.NewBoundary(zoneSquare(0, 0, 100, 100))},
		},
	}
	check, _, err := CheckPlacement(req)
	if err != nil {
		t.Fatalf("CheckPlacement: %v", err)
	}
	if !check.IsValid {
		t.Errorf("expected a valid placement: %v", check.Reasons)
	}

	req.Zones[0].Kind = "industrial"
	if _, _, err := CheckPlacement(req); err == nil || !strings.Contains(err.Error(), "zones[0]") {
		t.Errorf("unknown kind error = %v", err)
	}

	req.Zones[0].Kind = "residential"
	req.Footprint = spec.NewBoundary(geo.Ring{{Latitude: 1, Longitude: 1}, {Latitude: 1, Longitude: 1}})
	if _, _, err := CheckPlacement(req); err == nil || !strings.Contains(err.Error(), "footprint") {
		t.Errorf("degenerate footprint error = %v", err)
	}
}
