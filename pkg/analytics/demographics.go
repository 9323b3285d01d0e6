package analytics

import (
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/layout"
)

// typeDef describes how a building type yields dwellings.
type typeDef struct {
	householdSize float64
	// perBuilding is a fixed dwelling count; zero means units come from
	// floor area.
	perBuilding int
	// residential is the share of floor area given to dwellings.
	residential float64
}

const (
	avgUnitSizeM2     = 75.0 // average flat floor area in m²
	netToGross        = 0.80 // usable share of gross floor area
	schoolAgeFraction = 0.16 // share of residents of school age
)

// Household sizes per building type.
var typeDefs = map[string]typeDef{
	"house_detached": {householdSize: 2.9, perBuilding: 1, residential: 1},
	"house_semi":     {householdSize: 2.7, perBuilding: 1, residential: 1},
	"house_terraced": {householdSize: 2.5, perBuilding: 1, residential: 1},
	"flat_block":     {householdSize: 1.9, residential: 1},
	"mixed_use":      {householdSize: 1.8, residential: 0.6},
}

// dwellingUnits estimates the dwellings in one building. Non-residential
// types yield none.
func dwellingUnits(b layout.Building) int {
	td, ok := typeDefs[b.Type]
	if !ok {
		return 0
	}
	if td.perBuilding > 0 {
		return td.perBuilding
	}
	gfa := b.Footprint.Area() * float64(b.Floors)
	units := int(math.Floor(gfa * netToGross * td.residential / avgUnitSizeM2))
	if units < 1 {
		units = 1
	}
	return units
}

// resolveHousing sums dwellings and residents over every building.
func resolveHousing(buildings []layout.Building, siteHa float64) HousingEstimate {
	var h HousingEstimate
	pop := 0.0
	for _, b := range buildings {
		units := dwellingUnits(b)
		h.DwellingUnits += units
		pop += float64(units) * typeDefs[b.Type].householdSize
	}
	h.Population = int(math.Round(pop))
	h.Students = int(math.Round(pop * schoolAgeFraction))
	if siteHa > 0 {
		h.DensityDUPerHa = float64(h.DwellingUnits) / siteHa
	}
	return h
}
