package layout

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// ZoneKind identifies the land use a zone permits.
type ZoneKind string

const (
	ZoneResidential ZoneKind = "residential"
	ZoneCommercial  ZoneKind = "commercial"
	ZoneGreenSpace  ZoneKind = "green_space"
	ZoneAmenity     ZoneKind = "amenity"
	ZoneSolar       ZoneKind = "solar"
)

// ParseZoneKind maps a request string to a ZoneKind.
func ParseZoneKind(v string) (ZoneKind, error) {
	switch k := ZoneKind(v); k {
	case ZoneResidential, ZoneCommercial, ZoneGreenSpace, ZoneAmenity, ZoneSolar:
		return k, nil
	}
	return "", fmt.Errorf("unknown zone kind %q", v)
}

// Zone is an externally supplied land-use area. Zones are only read by the
// placement checks; the pipeline never generates them.
type Zone struct {
	Kind ZoneKind `json:"kind"`
	Ring geo.Ring `json:"ring"`
}

// ZoneCheck is the outcome of a placement check.
type ZoneCheck struct {
	IsValid        bool      `json:"is_valid"`
	Reasons        []string  `json:"reasons"`
	CompatibleZone *ZoneKind `json:"compatible_zone,omitempty"`
}

var compatibleZones = map[string][]ZoneKind{
	"house_detached": {ZoneResidential},
	"house_semi":     {ZoneResidential},
	"house_terraced": {ZoneResidential},
	"flat_block":     {ZoneResidential, ZoneCommercial},
	"mixed_use":      {ZoneResidential, ZoneCommercial},
	"shop":           {ZoneCommercial},
	"office":         {ZoneCommercial},
	"community_hall": {ZoneAmenity, ZoneResidential},
	"school":         {ZoneAmenity, ZoneResidential},
	"pavilion":       {ZoneGreenSpace, ZoneAmenity},
	"solar_array":    {ZoneSolar},
}

var defaultCompatibleZones = []ZoneKind{ZoneResidential, ZoneCommercial, ZoneAmenity}

// AllowedZones returns the zone kinds a building type may be placed in.
func AllowedZones(buildingType string) []ZoneKind {
	if kinds, ok := compatibleZones[buildingType]; ok {
		return kinds
	}
	return defaultCompatibleZones
}

// ValidatePlacement checks a footprint against the zones. The footprint
// must lie inside a zone whose kind the building type allows. Zones are
// tried in order and the first one containing the footprint decides.
func ValidatePlacement(footprint geo.Ring, buildingType string, zones []Zone) ZoneCheck {
	open := footprint.Open()
	if len(open) == 0 {
		return ZoneCheck{Reasons: []string{"footprint is empty"}}
	}
	// Containment is affine-invariant, so any local projection gives the
	// same answer as testing in degrees.
	proj := geo.NewProjector(geo.RingCentroid(footprint))
	return checkPlacement(proj.ProjectRing(footprint), buildingType, projectZones(proj, zones))
}

// planarZone is a Zone projected into the run's planar frame.
type planarZone struct {
	Kind    ZoneKind
	Polygon geo.Polygon
}

func projectZones(proj *geo.Projector, zones []Zone) []planarZone {
	out := make([]planarZone, len(zones))
	for i, z := range zones {
		out[i] = planarZone{Kind: z.Kind, Polygon: proj.ProjectRing(z.Ring)}
	}
	return out
}

func checkPlacement(footprint geo.Polygon, buildingType string, zones []planarZone) ZoneCheck {
	var container *planarZone
	for i := range zones {
		if containsAll(zones[i].Polygon, footprint) {
			container = &zones[i]
			break
		}
	}
	if container == nil {
		return ZoneCheck{Reasons: []string{"must be placed within a zoned area"}}
	}
	for _, k := range AllowedZones(buildingType) {
		if k == container.Kind {
			kind := k
			return ZoneCheck{IsValid: true, Reasons: []string{}, CompatibleZone: &kind}
		}
	}
	return ZoneCheck{Reasons: []string{
		fmt.Sprintf("%s is not compatible with %s zone", buildingType, container.Kind),
	}}
}

// containsAll reports whether every vertex of q lies inside p.
func containsAll(p, q geo.Polygon) bool {
	if p.IsEmpty() || q.IsEmpty() {
		return false
	}
	for _, v := range q.Vertices {
		if !p.Contains(v) {
			return false
		}
	}
	return true
}
