package settings

// Overrides holds optional values that replace the density preset. A nil
// field keeps the preset value.
type Overrides struct {
	Layout         *Layout         `json:"layout,omitempty" yaml:"layout,omitempty"`
	RoadStyle      *RoadStyle      `json:"road_style,omitempty" yaml:"road_style,omitempty"`
	GreenSpaceType *GreenSpaceType `json:"green_space_type,omitempty" yaml:"green_space_type,omitempty"`
	BuildingShape  *BuildingShape  `json:"building_shape,omitempty" yaml:"building_shape,omitempty"`
	BuildingType   *string         `json:"building_type,omitempty" yaml:"building_type,omitempty"`

	RoadWidth              *float64 `json:"road_width,omitempty" yaml:"road_width,omitempty"`
	SegmentLength          *float64 `json:"segment_length,omitempty" yaml:"segment_length,omitempty"`
	MinSegmentLength       *float64 `json:"min_segment_length,omitempty" yaml:"min_segment_length,omitempty"`
	InfluenceRadius        *float64 `json:"influence_radius,omitempty" yaml:"influence_radius,omitempty"`
	KillRadius             *float64 `json:"kill_radius,omitempty" yaml:"kill_radius,omitempty"`
	AttractorsPerHectare   *float64 `json:"attractors_per_hectare,omitempty" yaml:"attractors_per_hectare,omitempty"`
	MaxGrowthRounds        *int     `json:"max_growth_rounds,omitempty" yaml:"max_growth_rounds,omitempty"`
	InitialSpokes          *int     `json:"initial_spokes,omitempty" yaml:"initial_spokes,omitempty"`
	AntiClusterFactor      *float64 `json:"anti_cluster_factor,omitempty" yaml:"anti_cluster_factor,omitempty"`
	MinRemainingAttractors *int     `json:"min_remaining_attractors,omitempty" yaml:"min_remaining_attractors,omitempty"`
	MinRemainingFraction   *float64 `json:"min_remaining_fraction,omitempty" yaml:"min_remaining_fraction,omitempty"`
	SimplifyTolerance      *float64 `json:"simplify_tolerance,omitempty" yaml:"simplify_tolerance,omitempty"`

	MinBlockArea     *float64 `json:"min_block_area,omitempty" yaml:"min_block_area,omitempty"`
	MinParcelArea    *float64 `json:"min_parcel_area,omitempty" yaml:"min_parcel_area,omitempty"`
	TargetParcelArea *float64 `json:"target_parcel_area,omitempty" yaml:"target_parcel_area,omitempty"`

	GreenspaceRatio *float64 `json:"greenspace_ratio,omitempty" yaml:"greenspace_ratio,omitempty"`
	WalkRadius      *float64 `json:"walk_radius,omitempty" yaml:"walk_radius,omitempty"`
	GreenAreaBonus  *float64 `json:"green_area_bonus,omitempty" yaml:"green_area_bonus,omitempty"`

	BuildingSetback *float64 `json:"building_setback,omitempty" yaml:"building_setback,omitempty"`
	RoadSetback     *float64 `json:"road_setback,omitempty" yaml:"road_setback,omitempty"`
	SiteSetback     *float64 `json:"site_setback,omitempty" yaml:"site_setback,omitempty"`
	MinWidth        *float64 `json:"min_width,omitempty" yaml:"min_width,omitempty"`
	MaxWidth        *float64 `json:"max_width,omitempty" yaml:"max_width,omitempty"`
	MinDepth        *float64 `json:"min_depth,omitempty" yaml:"min_depth,omitempty"`
	MaxDepth        *float64 `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
	FloorsMin       *int     `json:"floors_min,omitempty" yaml:"floors_min,omitempty"`
	FloorsMax       *int     `json:"floors_max,omitempty" yaml:"floors_max,omitempty"`
	Spacing         *float64 `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	FitCoverage     *float64 `json:"fit_coverage,omitempty" yaml:"fit_coverage,omitempty"`
	ShrinkStep      *float64 `json:"shrink_step,omitempty" yaml:"shrink_step,omitempty"`
	MaxFitAttempts  *int     `json:"max_fit_attempts,omitempty" yaml:"max_fit_attempts,omitempty"`
	FallbackScale   *float64 `json:"fallback_scale,omitempty" yaml:"fallback_scale,omitempty"`
}

// Float returns a pointer to v, for building overrides in code.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setI(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func (o Overrides) apply(s *Settings) {
	if o.Layout != nil {
		s.Layout = *o.Layout
	}
	if o.RoadStyle != nil {
		s.RoadStyle = *o.RoadStyle
	}
	if o.GreenSpaceType != nil {
		s.GreenSpaceType = *o.GreenSpaceType
	}
	if o.BuildingShape != nil {
		s.BuildingShape = *o.BuildingShape
	}
	if o.BuildingType != nil {
		s.BuildingType = *o.BuildingType
	}

	setF(&s.RoadWidth, o.RoadWidth)
	setF(&s.SegmentLength, o.SegmentLength)
	setF(&s.MinSegmentLength, o.MinSegmentLength)
	setF(&s.InfluenceRadius, o.InfluenceRadius)
	setF(&s.KillRadius, o.KillRadius)
	setF(&s.AttractorsPerHectare, o.AttractorsPerHectare)
	setI(&s.MaxGrowthRounds, o.MaxGrowthRounds)
	setI(&s.InitialSpokes, o.InitialSpokes)
	setF(&s.AntiClusterFactor, o.AntiClusterFactor)
	setI(&s.MinRemainingAttractors, o.MinRemainingAttractors)
	setF(&s.MinRemainingFraction, o.MinRemainingFraction)
	setF(&s.SimplifyTolerance, o.SimplifyTolerance)

	// The block floor follows the parcel floor unless set explicitly.
	setF(&s.MinParcelArea, o.MinParcelArea)
	s.MinBlockArea = s.MinParcelArea
	setF(&s.MinBlockArea, o.MinBlockArea)
	setF(&s.TargetParcelArea, o.TargetParcelArea)

	setF(&s.GreenspaceRatio, o.GreenspaceRatio)
	setF(&s.WalkRadius, o.WalkRadius)
	setF(&s.GreenAreaBonus, o.GreenAreaBonus)

	setF(&s.BuildingSetback, o.BuildingSetback)
	setF(&s.RoadSetback, o.RoadSetback)
	setF(&s.SiteSetback, o.SiteSetback)
	setF(&s.MinWidth, o.MinWidth)
	setF(&s.MaxWidth, o.MaxWidth)
	setF(&s.MinDepth, o.MinDepth)
	setF(&s.MaxDepth, o.MaxDepth)
	setI(&s.FloorsMin, o.FloorsMin)
	setI(&s.FloorsMax, o.FloorsMax)
	setF(&s.Spacing, o.Spacing)
	setF(&s.FitCoverage, o.FitCoverage)
	setF(&s.ShrinkStep, o.ShrinkStep)
	setI(&s.MaxFitAttempts, o.MaxFitAttempts)
	setF(&s.FallbackScale, o.FallbackScale)
}
