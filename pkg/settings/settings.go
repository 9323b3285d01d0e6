// Package settings resolves the tuning values every generation stage reads.
//
// A Settings value is built once by Resolve from a density preset and a set
// of optional overrides, and is never modified afterwards.
package settings

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Density selects a preset of road, parcel and building dimensions.
type Density string

const (
	DensityLow      Density = "low"
	DensityMedium   Density = "medium"
	DensityHigh     Density = "high"
	DensityVeryHigh Density = "very-high"
)

// Layout selects how road attractors are scattered.
type Layout string

const (
	LayoutOrganic Layout = "organic"
	LayoutEven    Layout = "even"
)

// RoadStyle selects how road chains are drawn.
type RoadStyle string

const (
	RoadStraight RoadStyle = "straight"
	RoadCurved   RoadStyle = "curved"
)

// GreenSpaceType selects the green-space scoring strategy.
type GreenSpaceType string

const (
	GreenAccessible GreenSpaceType = "accessible"
	GreenCentral    GreenSpaceType = "central"
	GreenNone       GreenSpaceType = "none"
)

// BuildingShape selects the footprint outline.
type BuildingShape string

const (
	ShapeRectangle BuildingShape = "rectangle"
	ShapeL         BuildingShape = "l_shape"
	ShapeT         BuildingShape = "t_shape"
	ShapeMixed     BuildingShape = "mixed"
)

// Settings is the resolved, immutable configuration for one run.
// Lengths are meters and areas square meters.
type Settings struct {
	Density        Density        `json:"density"`
	Layout         Layout         `json:"layout"`
	RoadStyle      RoadStyle      `json:"road_style"`
	GreenSpaceType GreenSpaceType `json:"green_space_type"`
	BuildingShape  BuildingShape  `json:"building_shape"`
	BuildingType   string         `json:"building_type"`

	// Roads
	RoadWidth              float64 `json:"road_width"`
	SegmentLength          float64 `json:"segment_length"`
	MinSegmentLength       float64 `json:"min_segment_length"`
	InfluenceRadius        float64 `json:"influence_radius"`
	KillRadius             float64 `json:"kill_radius"`
	AttractorsPerHectare   float64 `json:"attractors_per_hectare"`
	MaxGrowthRounds        int     `json:"max_growth_rounds"`
	InitialSpokes          int     `json:"initial_spokes"`
	AntiClusterFactor      float64 `json:"anti_cluster_factor"`
	MinRemainingAttractors int     `json:"min_remaining_attractors"`
	MinRemainingFraction   float64 `json:"min_remaining_fraction"`
	SimplifyTolerance      float64 `json:"simplify_tolerance"`

	// Subdivision
	MinBlockArea     float64 `json:"min_block_area"`
	MinParcelArea    float64 `json:"min_parcel_area"`
	TargetParcelArea float64 `json:"target_parcel_area"`

	// Green space
	GreenspaceRatio float64 `json:"greenspace_ratio"`
	WalkRadius      float64 `json:"walk_radius"`
	GreenAreaBonus  float64 `json:"green_area_bonus"`

	// Buildings
	BuildingSetback float64 `json:"building_setback"`
	RoadSetback     float64 `json:"road_setback"`
	SiteSetback     float64 `json:"site_setback"`
	MinWidth        float64 `json:"min_width"`
	MaxWidth        float64 `json:"max_width"`
	MinDepth        float64 `json:"min_depth"`
	MaxDepth        float64 `json:"max_depth"`
	FloorsMin       int     `json:"floors_min"`
	FloorsMax       int     `json:"floors_max"`
	Spacing         float64 `json:"spacing"`
	FitCoverage     float64 `json:"fit_coverage"`
	ShrinkStep      float64 `json:"shrink_step"`
	MaxFitAttempts  int     `json:"max_fit_attempts"`
	FallbackScale   float64 `json:"fallback_scale"`
}

// MaxGreenspaceRatio caps the green-space ratio whatever the request asks.
const MaxGreenspaceRatio = 0.9

// Defaults returns the preset for density. Unknown densities fall back to
// medium; Resolve rejects them before that matters.
func Defaults(d Density) Settings {
	s := Settings{
		Density:                d,
		Layout:                 LayoutOrganic,
		RoadStyle:              RoadStraight,
		GreenSpaceType:         GreenAccessible,
		BuildingShape:          ShapeRectangle,
		MaxGrowthRounds:        1500,
		InitialSpokes:          3,
		AntiClusterFactor:      0.3,
		MinRemainingAttractors: 30,
		MinRemainingFraction:   0.03,
		SimplifyTolerance:      0.5,
		WalkRadius:             150,
		GreenAreaBonus:         0.05,
		FitCoverage:            0.85,
		ShrinkStep:             0.08,
		MaxFitAttempts:         8,
		FallbackScale:          0.92,
	}
	switch d {
	case DensityLow:
		s.RoadWidth, s.SegmentLength, s.MinSegmentLength = 7, 40, 12
		s.InfluenceRadius, s.KillRadius, s.AttractorsPerHectare = 120, 30, 6
		s.MinParcelArea, s.TargetParcelArea = 450, 1400
		s.BuildingSetback = 6
		s.MinWidth, s.MaxWidth, s.MinDepth, s.MaxDepth = 10, 16, 8, 12
		s.FloorsMin, s.FloorsMax = 1, 2
		s.GreenspaceRatio, s.Spacing = 0.25, 6
		s.BuildingType = "house_detached"
	case DensityHigh:
		s.RoadWidth, s.SegmentLength, s.MinSegmentLength = 9, 26, 8
		s.InfluenceRadius, s.KillRadius, s.AttractorsPerHectare = 85, 22, 16
		s.MinParcelArea, s.TargetParcelArea = 200, 600
		s.BuildingSetback = 3
		s.MinWidth, s.MaxWidth, s.MinDepth, s.MaxDepth = 12, 22, 10, 16
		s.FloorsMin, s.FloorsMax = 3, 6
		s.GreenspaceRatio, s.Spacing = 0.12, 3
		s.BuildingType = "flat_block"
	case DensityVeryHigh:
		s.RoadWidth, s.SegmentLength, s.MinSegmentLength = 10, 22, 6
		s.InfluenceRadius, s.KillRadius, s.AttractorsPerHectare = 70, 18, 24
		s.MinParcelArea, s.TargetParcelArea = 150, 450
		s.BuildingSetback = 2
		s.MinWidth, s.MaxWidth, s.MinDepth, s.MaxDepth = 14, 28, 12, 20
		s.FloorsMin, s.FloorsMax = 5, 12
		s.GreenspaceRatio, s.Spacing = 0.10, 2
		s.BuildingType = "flat_block"
	default:
		s.RoadWidth, s.SegmentLength, s.MinSegmentLength = 8, 32, 10
		s.InfluenceRadius, s.KillRadius, s.AttractorsPerHectare = 100, 26, 10
		s.MinParcelArea, s.TargetParcelArea = 300, 900
		s.BuildingSetback = 4
		s.MinWidth, s.MaxWidth, s.MinDepth, s.MaxDepth = 9, 14, 8, 12
		s.FloorsMin, s.FloorsMax = 2, 3
		s.GreenspaceRatio, s.Spacing = 0.18, 4
		s.BuildingType = "house_terraced"
	}
	s.MinBlockArea = s.MinParcelArea
	return s
}

// ParseDensity maps a request string to a Density. Empty means medium.
func ParseDensity(v string) (Density, error) {
	switch Density(v) {
	case "":
		return DensityMedium, nil
	case DensityLow, DensityMedium, DensityHigh, DensityVeryHigh:
		return Density(v), nil
	}
	return "", fmt.Errorf("%w: unknown density %q", ErrInvalid, v)
}

// Resolve builds the settings for density and applies every non-nil
// override. The result is validated.
func Resolve(d Density, o Overrides) (Settings, error) {
	if _, err := ParseDensity(string(d)); err != nil {
		return Settings{}, err
	}
	if d == "" {
		d = DensityMedium
	}
	s := Defaults(d)
	o.apply(&s)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// EffectiveGreenspaceRatio returns the ratio actually used for allocation.
func (s Settings) EffectiveGreenspaceRatio() float64 {
	if s.GreenSpaceType == GreenNone {
		return 0
	}
	r := s.GreenspaceRatio
	if r < 0 {
		return 0
	}
	if r > MaxGreenspaceRatio {
		return MaxGreenspaceRatio
	}
	return r
}

// Validate reports the first inconsistent value.
func (s Settings) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"road_width", s.RoadWidth},
		{"segment_length", s.SegmentLength},
		{"min_segment_length", s.MinSegmentLength},
		{"influence_radius", s.InfluenceRadius},
		{"kill_radius", s.KillRadius},
		{"attractors_per_hectare", s.AttractorsPerHectare},
		{"min_parcel_area", s.MinParcelArea},
		{"target_parcel_area", s.TargetParcelArea},
		{"min_width", s.MinWidth},
		{"min_depth", s.MinDepth},
		{"walk_radius", s.WalkRadius},
		{"fallback_scale", s.FallbackScale},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"building_setback", s.BuildingSetback},
		{"road_setback", s.RoadSetback},
		{"site_setback", s.SiteSetback},
		{"spacing", s.Spacing},
		{"simplify_tolerance", s.SimplifyTolerance},
		{"anti_cluster_factor", s.AntiClusterFactor},
		{"green_area_bonus", s.GreenAreaBonus},
		{"min_block_area", s.MinBlockArea},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalid, p.name, p.v)
		}
	}

	ratios := []struct {
		name string
		v    float64
	}{
		{"greenspace_ratio", s.GreenspaceRatio},
		{"fit_coverage", s.FitCoverage},
		{"shrink_step", s.ShrinkStep},
		{"min_remaining_fraction", s.MinRemainingFraction},
		{"fallback_scale", s.FallbackScale},
	}
	for _, r := range ratios {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %g", ErrInvalid, r.name, r.v)
		}
	}

	switch {
	case s.MinSegmentLength > s.SegmentLength:
		return fmt.Errorf("%w: min_segment_length %g exceeds segment_length %g", ErrInvalid, s.MinSegmentLength, s.SegmentLength)
	case s.KillRadius >= s.InfluenceRadius:
		return fmt.Errorf("%w: kill_radius %g must be below influence_radius %g", ErrInvalid, s.KillRadius, s.InfluenceRadius)
	case s.MinParcelArea > s.TargetParcelArea:
		return fmt.Errorf("%w: min_parcel_area %g exceeds target_parcel_area %g", ErrInvalid, s.MinParcelArea, s.TargetParcelArea)
	case s.MinWidth > s.MaxWidth:
		return fmt.Errorf("%w: min_width %g exceeds max_width %g", ErrInvalid, s.MinWidth, s.MaxWidth)
	case s.MinDepth > s.MaxDepth:
		return fmt.Errorf("%w: min_depth %g exceeds max_depth %g", ErrInvalid, s.MinDepth, s.MaxDepth)
	case s.FloorsMin < 1 || s.FloorsMin > s.FloorsMax:
		return fmt.Errorf("%w: floors range [%d, %d] is invalid", ErrInvalid, s.FloorsMin, s.FloorsMax)
	case s.MaxGrowthRounds < 1:
		return fmt.Errorf("%w: max_growth_rounds must be at least 1", ErrInvalid)
	case s.InitialSpokes < 0:
		return fmt.Errorf("%w: initial_spokes must not be negative", ErrInvalid)
	case s.MaxFitAttempts < 1:
		return fmt.Errorf("%w: max_fit_attempts must be at least 1", ErrInvalid)
	case s.MinRemainingAttractors < 0:
		return fmt.Errorf("%w: min_remaining_attractors must not be negative", ErrInvalid)
	}

	switch s.Layout {
	case LayoutOrganic, LayoutEven:
	default:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalid, s.Layout)
	}
	switch s.RoadStyle {
	case RoadStraight, RoadCurved:
	default:
		return fmt.Errorf("%w: unknown road_style %q", ErrInvalid, s.RoadStyle)
	}
	switch s.GreenSpaceType {
	case GreenAccessible, GreenCentral, GreenNone:
	default:
		return fmt.Errorf("%w: unknown green_space_type %q", ErrInvalid, s.GreenSpaceType)
	}
	switch s.BuildingShape {
	case ShapeRectangle, ShapeL, ShapeT, ShapeMixed:
	default:
		return fmt.Errorf("%w: unknown building_shape %q", ErrInvalid, s.BuildingShape)
	}
	if s.BuildingType == "" {
		return fmt.Errorf("%w: building_type must not be empty", ErrInvalid)
	}
	return nil
}
