package layout

import (
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/routing"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
)

// Block is a region of the site enclosed by road corridors.
type Block struct {
	ID      string      `json:"id"`
	Polygon geo.Polygon `json:"polygon"`
	AreaM2  float64     `json:"area_m2"`
}

// Parcel is one Voronoi piece of a block.
type Parcel struct {
	ID      string      `json:"id"`
	BlockID string      `json:"block_id"`
	Polygon geo.Polygon `json:"polygon"`
	AreaM2  float64     `json:"area_m2"`
	Green   bool        `json:"green"`
}

// Building is a footprint placed on a developable parcel.
type Building struct {
	ID          string                 `json:"id"`
	ParcelID    string                 `json:"parcel_id"`
	Type        string                 `json:"type"`
	Footprint   geo.Polygon            `json:"footprint"`
	Floors      int                    `json:"floors"`
	RotationDeg float64                `json:"rotation_deg"`
	Shape       settings.BuildingShape `json:"shape"`
	Width       float64                `json:"width"`
	Depth       float64                `json:"depth"`
}

// Layout is the full result of one pipeline run in planar coordinates.
// Origin anchors the projection used to produce it.
type Layout struct {
	Seed      uint32            `json:"seed"`
	Settings  settings.Settings `json:"settings"`
	Origin    geo.LatLng        `json:"origin"`
	Ring      geo.Ring          `json:"ring"`
	Boundary  geo.Polygon       `json:"boundary"`
	Network   routing.Network   `json:"network"`
	Roads     []geo.Polyline    `json:"roads"`
	Blocks    []Block           `json:"blocks"`
	Parcels   []Parcel          `json:"parcels"`
	Buildings []Building        `json:"buildings"`
	Trees     []Tree            `json:"trees"`
	Zones     []Zone            `json:"zones,omitempty"`
}

// Projector returns the projector the layout was computed in.
func (l *Layout) Projector() *geo.Projector {
	return geo.NewProjector(l.Origin)
}

// GreenSpaces returns the parcels allocated to green space.
func (l *Layout) GreenSpaces() []Parcel {
	out := []Parcel{}
	for _, p := range l.Parcels {
		if p.Green {
			out = append(out, p)
		}
	}
	return out
}

// Developable returns the parcels not allocated to green space.
func (l *Layout) Developable() []Parcel {
	out := []Parcel{}
	for _, p := range l.Parcels {
		if !p.Green {
			out = append(out, p)
		}
	}
	return out
}
