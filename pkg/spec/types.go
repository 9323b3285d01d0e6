package spec

import (
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
)

// SiteRequest is the input to one layout run.
type SiteRequest struct {
	Boundary       Boundary `yaml:"boundary" json:"boundary"`
	Density        string   `yaml:"density,omitempty" json:"density,omitempty"`
	Layout         string   `yaml:"layout,omitempty" json:"layout,omitempty"`
	RoadStyle      string   `yaml:"road_style,omitempty" json:"road_style,omitempty"`
	GreenSpaceType string   `yaml:"green_space_type,omitempty" json:"green_space_type,omitempty"`
	Seed           string   `yaml:"seed,omitempty" json:"seed,omitempty"`

	RoadSetback     *float64 `yaml:"road_setback,omitempty" json:"road_setback,omitempty"`
	SiteSetback     *float64 `yaml:"site_setback,omitempty" json:"site_setback,omitempty"`
	MinBuildingSize *Size    `yaml:"min_building_size,omitempty" json:"min_building_size,omitempty"`
	MaxBuildingSize *Size    `yaml:"max_building_size,omitempty" json:"max_building_size,omitempty"`
	Spacing         *float64 `yaml:"spacing,omitempty" json:"spacing,omitempty"`
	BuildingShape   string   `yaml:"building_shape,omitempty" json:"building_shape,omitempty"`
	BuildingType    string   `yaml:"building_type,omitempty" json:"building_type,omitempty"`

	Zones     []ZoneDef          `yaml:"zones,omitempty" json:"zones,omitempty"`
	Overrides settings.Overrides `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Size is a building footprint extent in meters. Width runs along the
// street front, Depth away from it.
type Size struct {
	Width float64 `yaml:"width" json:"width"`
	Depth float64 `yaml:"depth" json:"depth"`
}

// ZoneDef is a zoned area supplied with a request.
type ZoneDef struct {
	Kind string   `yaml:"kind" json:"kind"`
	Ring Boundary `yaml:"ring" json:"ring"`
}

// PlacementRequest asks whether one footprint may be placed among zones.
type PlacementRequest struct {
	Footprint    Boundary  `yaml:"footprint" json:"footprint"`
	BuildingType string    `yaml:"building_type" json:"building_type"`
	Zones        []ZoneDef `yaml:"zones" json:"zones"`
}

// Settings resolves the request's density preset, then its overrides
// block, then its top-level fields, later sources winning.
func (r *SiteRequest) Settings() (settings.Settings, error) {
	d, err := settings.ParseDensity(r.Density)
	if err != nil {
		return settings.Settings{}, err
	}
	o := r.Overrides
	if r.Layout != "" {
		v := settings.Layout(r.Layout)
		o.Layout = &v
	}
	if r.RoadStyle != "" {
		v := settings.RoadStyle(r.RoadStyle)
		o.RoadStyle = &v
	}
	if r.GreenSpaceType != "" {
		v := settings.GreenSpaceType(r.GreenSpaceType)
		o.GreenSpaceType = &v
	}
	if r.BuildingShape != "" {
		v := settings.BuildingShape(r.BuildingShape)
		o.BuildingShape = &v
	}
	if r.BuildingType != "" {
		o.BuildingType = settings.String(r.BuildingType)
	}
	if r.RoadSetback != nil {
		o.RoadSetback = r.RoadSetback
	}
	if r.SiteSetback != nil {
		o.SiteSetback = r.SiteSetback
	}
	if r.Spacing != nil {
		o.Spacing = r.Spacing
	}
	if r.MinBuildingSize != nil {
		o.MinWidth = settings.Float(r.MinBuildingSize.Width)
		o.MinDepth = settings.Float(r.MinBuildingSize.Depth)
	}
	if r.MaxBuildingSize != nil {
		o.MaxWidth = settings.Float(r.MaxBuildingSize.Width)
		o.MaxDepth = settings.Float(r.MaxBuildingSize.Depth)
	}
	return settings.Resolve(d, o)
}

// SeedPayload is the canonical record hashed when a request has no
// explicit seed.
type SeedPayload struct {
	Boundary geo.Ring          `json:"boundary"`
	Settings settings.Settings `json:"settings"`
}
