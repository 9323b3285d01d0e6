// Package scene converts a planar layout into its geographic output and
// checks a finished layout against the generator's guarantees.
package scene

import (
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
)

// FeatureKind identifies the kind of an output feature.
type FeatureKind string

const (
	FeatureRoad       FeatureKind = "road"
	FeatureParcel     FeatureKind = "parcel"
	FeatureGreenSpace FeatureKind = "green_space"
	FeatureBuilding   FeatureKind = "building"
	FeatureTree       FeatureKind = "tree"
)

// Road is a road centerline.
type Road struct {
	ID     string       `json:"id"`
	Path   []geo.LatLng `json:"path"`
	WidthM float64      `json:"width_m"`
}

// Parcel is a parcel or green space. Rings holds the outer ring first,
// then any holes.
type Parcel struct {
	ID      string     `json:"id"`
	BlockID string     `json:"block_id"`
	Rings   []geo.Ring `json:"rings"`
	AreaM2  float64    `json:"area_m2"`
}

// Building is a placed footprint.
type Building struct {
	ID          string                 `json:"id"`
	ParcelID    string                 `json:"parcel_id"`
	Type        string                 `json:"type"`
	Footprint   geo.Ring               `json:"footprint"`
	Floors      int                    `json:"floors"`
	HeightM     float64                `json:"height_m"`
	RotationDeg float64                `json:"rotation_deg"`
	Shape       settings.BuildingShape `json:"shape"`
}

// Tree is a single tree.
type Tree struct {
	ID       string     `json:"id"`
	Position geo.LatLng `json:"position"`
	CanopyD  float64    `json:"canopy_diameter"`
	Height   float64    `json:"height"`
	Context  string     `json:"context"`
}

// Bounds is the geographic extent of the output.
type Bounds struct {
	Min geo.LatLng `json:"min"`
	Max geo.LatLng `json:"max"`
}

// Metadata holds run-level information.
type Metadata struct {
	Seed       uint32           `json:"seed"`
	Density    settings.Density `json:"density"`
	Origin     geo.LatLng       `json:"origin"`
	Bounds     Bounds           `json:"bounds"`
	StopReason string           `json:"stop_reason"`
}

// Output is the geographic result of one run. Every collection is
// non-nil.
type Output struct {
	Metadata    Metadata   `json:"metadata"`
	Boundary    geo.Ring   `json:"boundary"`
	Roads       []Road     `json:"roads"`
	Parcels     []Parcel   `json:"parcels"`
	GreenSpaces []Parcel   `json:"green_spaces"`
	Buildings   []Building `json:"buildings"`
	Trees       []Tree     `json:"trees"`
}
