package analytics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
)

const m2PerHa = 10000 // square meters per hectare

// resolveSite measures the boundary. Compactness is 1 for convex sites and
// falls as the outline becomes more irregular.
func resolveSite(boundary geo.Polygon) SiteMetrics {
	area := boundary.Area()
	hull := geo.ConvexHullArea(boundary.Vertices)
	m := SiteMetrics{
		AreaM2:     area,
		AreaHa:     area / m2PerHa,
		PerimeterM: boundary.Perimeter(),
		HullAreaM2: hull,
	}
	if hull > 0 {
		m.Compactness = area / hull
	}
	return m
}

// resolveParcels computes area statistics over every parcel, green or not.
func resolveParcels(parcels []layout.Parcel) ParcelStats {
	if len(parcels) == 0 {
		return ParcelStats{}
	}
	areas := make([]float64, len(parcels))
	for i, p := range parcels {
		areas[i] = p.AreaM2
	}
	mean, std := stat.MeanStdDev(areas, nil)
	if len(areas) == 1 {
		std = 0
	}
	return ParcelStats{
		Count:        len(areas),
		TotalAreaM2:  floats.Sum(areas),
		MeanAreaM2:   mean,
		StdDevAreaM2: std,
		MinAreaM2:    floats.Min(areas),
		MaxAreaM2:    floats.Max(areas),
	}
}

// resolveGreen compares the green parcels with the configured target.
func resolveGreen(l *layout.Layout, total float64) GreenMetrics {
	m := GreenMetrics{TargetRatio: l.Settings.EffectiveGreenspaceRatio()}
	for _, p := range l.GreenSpaces() {
		m.Count++
		m.AreaM2 += p.AreaM2
	}
	if total > 0 {
		m.Ratio = m.AreaM2 / total
	}
	return m
}

// resolveBuildings totals footprints and floor area.
func resolveBuildings(l *layout.Layout, siteArea float64) BuildingStats {
	m := BuildingStats{
		Count:          len(l.Buildings),
		ByShape:        map[string]int{},
		ParcelsSkipped: len(l.Developable()) - len(l.Buildings),
	}
	if len(l.Buildings) == 0 {
		return m
	}
	floors := make([]float64, len(l.Buildings))
	for i, b := range l.Buildings {
		a := b.Footprint.Area()
		m.FootprintAreaM2 += a
		m.GrossFloorAreaM2 += a * float64(b.Floors)
		m.ByShape[string(b.Shape)]++
		floors[i] = float64(b.Floors)
	}
	m.MeanFloors = stat.Mean(floors, nil)
	if siteArea > 0 {
		m.Coverage = m.FootprintAreaM2 / siteArea
		m.FloorAreaRatio = m.GrossFloorAreaM2 / siteArea
	}
	return m
}
