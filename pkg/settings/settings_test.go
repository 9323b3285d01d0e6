package settings

import (
	"errors"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	for _, d := range []Density{DensityLow, DensityMedium, DensityHigh, DensityVeryHigh} {
		if err := Defaults(d).Validate(); err != nil {
			t.Errorf("%s defaults invalid: %v", d, err)
		}
	}
}

func TestDensityPresets(t *testing.T) {
	tests := []struct {
		density  Density
		road     float64
		minArea  float64
		building string
	}{
		{DensityLow, 7, 450, "house_detached"},
		{DensityMedium, 8, 300, "house_terraced"},
		{DensityHigh, 9, 200, "flat_block"},
		{DensityVeryHigh, 10, 150, "flat_block"},
	}
	for _, tt := range tests {
		s, err := Resolve(tt.density, Overrides{})
		if err != nil {
			t.Fatalf("Resolve(%s): %v", tt.density, err)
		}
		if s.RoadWidth != tt.road {
			t.Errorf("%s road width = %g, want %g", tt.density, s.RoadWidth, tt.road)
		}
		if s.MinParcelArea != tt.minArea || s.MinBlockArea != tt.minArea {
			t.Errorf("%s area floors = %g/%g, want %g", tt.density, s.MinParcelArea, s.MinBlockArea, tt.minArea)
		}
		if s.BuildingType != tt.building {
			t.Errorf("%s building type = %q, want %q", tt.density, s.BuildingType, tt.building)
		}
	}
}

func TestOverridesWin(t *testing.T) {
	curved := RoadCurved
	s, err := Resolve(DensityLow, Overrides{
		RoadWidth:     Float(12),
		MinParcelArea: Float(500),
		RoadStyle:     &curved,
		FitCoverage:   Float(0.9),
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.RoadWidth != 12 || s.RoadStyle != RoadCurved || s.FitCoverage != 0.9 {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.MinBlockArea != 500 {
		t.Errorf("block floor should follow parcel floor, got %g", s.MinBlockArea)
	}
	if s.SegmentLength != 40 {
		t.Errorf("untouched field changed: segment length %g", s.SegmentLength)
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name string
		d    Density
		o    Overrides
	}{
		{"unknown density", "suburban", Overrides{}},
		{"negative road width", DensityMedium, Overrides{RoadWidth: Float(-1)}},
		{"inverted widths", DensityMedium, Overrides{MinWidth: Float(20), MaxWidth: Float(10)}},
		{"ratio above one", DensityMedium, Overrides{GreenspaceRatio: Float(1.5)}},
		{"inverted floors", DensityMedium, Overrides{FloorsMin: Int(4), FloorsMax: Int(2)}},
		{"kill beyond influence", DensityMedium, Overrides{KillRadius: Float(200)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.d, tt.o); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEffectiveGreenspaceRatio(t *testing.T) {
	s := Defaults(DensityMedium)
	s.GreenspaceRatio = 0.95
	if got := s.EffectiveGreenspaceRatio(); got != MaxGreenspaceRatio {
		t.Errorf("expected clamp to %g, got %g", MaxGreenspaceRatio, got)
	}
	s.GreenSpaceType = GreenNone
	if got := s.EffectiveGreenspaceRatio(); got != 0 {
		t.Errorf("expected 0 for none, got %g", got)
	}
}

func TestEmptyDensityIsMedium(t *testing.T) {
	s, err := Resolve("", Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Density != DensityMedium {
		t.Errorf("expected medium, got %s", s.Density)
	}
}
