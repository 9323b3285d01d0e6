// Package analytics measures a generated layout: site shape, road network,
// parcel statistics, green-space share, building yield and the services
// the resulting population would need.
package analytics

import (
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Compute derives the metrics of a layout and a report of warnings about
// results that fall short of their targets.
func Compute(l *layout.Layout) (*Metrics, *validation.Report) {
	report := validation.NewReport()

	// 1. Site
	site := resolveSite(l.Boundary)

	// 2. Roads
	roads := RoadMetrics{
		Nodes:      len(l.Network.Graph.Nodes),
		Edges:      len(l.Network.Graph.Edges),
		Rounds:     l.Network.Rounds,
		StopReason: string(l.Network.StopReason),
		LengthM:    l.Network.Graph.Length(),
		Attractors: len(l.Network.Attractors),
		Unconsumed: len(l.Network.Remaining()),
	}
	if site.AreaHa > 0 {
		roads.DensityMPerHa = roads.LengthM / site.AreaHa
	}

	// 3. Parcels and green space
	parcels := resolveParcels(l.Parcels)
	green := resolveGreen(l, parcels.TotalAreaM2)

	// 4. Buildings and housing
	buildings := resolveBuildings(l, site.AreaM2)
	housing := resolveHousing(l.Buildings, site.AreaHa)

	// 5. Services
	services := resolveServices(housing.Population, housing.Students)

	trees := map[string]int{}
	for _, t := range l.Trees {
		trees[t.Context]++
	}

	m := &Metrics{
		Site:      site,
		Roads:     roads,
		Blocks:    len(l.Blocks),
		Parcels:   parcels,
		Green:     green,
		Buildings: buildings,
		Housing:   housing,
		Services:  services,
		Trees:     trees,
	}

	// 6. Target checks
	validateMetrics(m, report)

	return m, report
}
