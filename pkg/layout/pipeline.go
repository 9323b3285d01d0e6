package layout

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/rng"
	"github.com/ChicagoDave/siteplanner/pkg/routing"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Generate validates a request and runs the full pipeline on it. Invalid
// input is returned as an error; geometric fallbacks taken along the way
// are warnings in the report.
func Generate(req *spec.SiteRequest) (*Layout, *validation.Report, error) {
	report := validation.NewReport()

	ring, err := prepareRing(req.Boundary.Ring, "boundary", report)
	if err != nil {
		return nil, report, err
	}
	s, err := req.Settings()
	if err != nil {
		return nil, report, err
	}
	zones, err := parseZones(req.Zones, report)
	if err != nil {
		return nil, report, err
	}

	seed, err := rng.DeriveSeed(req.Seed, spec.SeedPayload{Boundary: ring, Settings: s})
	if err != nil {
		return nil, report, fmt.Errorf("deriving seed: %w", err)
	}

	l, runReport := Run(ring, s, zones, seed)
	report.Merge(runReport)
	return l, report, nil
}

// CheckPlacement validates a placement request: the zones and footprint
// are normalized the way Generate normalizes them, then ValidatePlacement
// decides. Malformed input is an error, never an invalid ZoneCheck.
func CheckPlacement(req *spec.PlacementRequest) (ZoneCheck, *validation.Report, error) {
	report := validation.NewReport()
	zones, err := parseZones(req.Zones, report)
	if err != nil {
		return ZoneCheck{}, report, err
	}
	footprint, err := prepareRing(req.Footprint.Ring, "footprint", report)
	if err != nil {
		return ZoneCheck{}, report, fmt.Errorf("footprint: %w", err)
	}
	return ValidatePlacement(footprint, req.BuildingType, zones), report, nil
}

func parseZones(defs []spec.ZoneDef, report *validation.Report) ([]Zone, error) {
	zones := make([]Zone, 0, len(defs))
	for i, z := range defs {
		kind, err := ParseZoneKind(z.Kind)
		if err != nil {
			return nil, fmt.Errorf("zones[%d]: %w", i, err)
		}
		zr, err := prepareRing(z.Ring.Ring, fmt.Sprintf("zones[%d].ring", i), report)
		if err != nil {
			return nil, fmt.Errorf("zones[%d]: %w", i, err)
		}
		zones = append(zones, Zone{Kind: kind, Ring: zr})
	}
	return zones, nil
}

// prepareRing normalizes a ring and repairs it when its edges cross.
func prepareRing(r geo.Ring, field string, report *validation.Report) (geo.Ring, error) {
	ring, err := geo.NormalizeRing(r)
	if err != nil {
		return nil, err
	}
	if cerr := geo.CheckRing(ring); cerr != nil {
		repaired, err := geo.RepairRing(ring)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cerr, err)
		}
		report.AddWarning(validation.Result{
			Level:   validation.LevelGeometry,
			Stage:   "boundary",
			Field:   field,
			Message: fmt.Sprintf("%v, repaired to its largest simple part", cerr),
		})
		ring = repaired
	}
	return ring, nil
}

// Run executes every stage in order on a normalized ring. All randomness
// comes from one stream seeded with seed, so equal inputs give equal
// layouts.
func Run(ring geo.Ring, s settings.Settings, zones []Zone, seed uint32) (*Layout, *validation.Report) {
	report := validation.NewReport()
	origin := geo.RingCentroid(ring)
	proj := geo.NewProjector(origin)
	boundary := proj.ProjectRing(ring).EnsureCCW()
	r := rng.New(seed)

	net := routing.Grow(boundary, s, r)
	report.AddInfo(validation.Result{
		Level: validation.LevelLayout,
		Stage: "roads",
		Message: fmt.Sprintf("%d road nodes, %d edges after %d rounds (%s)",
			len(net.Graph.Nodes), len(net.Graph.Edges), net.Rounds, net.StopReason),
	})
	roads := net.Roads(s.RoadStyle, boundary)
	if roads == nil {
		roads = []geo.Polyline{}
	}

	blocks, rep := SubdivideIntoBlocks(boundary, roads, s)
	report.Merge(rep)

	parcels, rep := SubdivideIntoParcels(blocks, roads, s, r)
	report.Merge(rep)

	parcels, rep = AllocateGreenSpace(parcels, net.Positions(), boundary.Centroid(), s)
	report.Merge(rep)

	buildings, rep := PlaceBuildings(parcels, NewSite(boundary, roads, proj, zones), s, r)
	report.Merge(rep)

	trees, rep := PlaceTrees(parcels, roads, buildings, boundary, s)
	report.Merge(rep)

	return &Layout{
		Seed:      seed,
		Settings:  s,
		Origin:    origin,
		Ring:      ring,
		Boundary:  boundary,
		Network:   net,
		Roads:     roads,
		Blocks:    blocks,
		Parcels:   parcels,
		Buildings: buildings,
		Trees:     trees,
		Zones:     zones,
	}, report
}
