package layout

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/rng"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Site is the context buildings are placed against.
type Site struct {
	Boundary geo.Polygon
	Roads    []geo.Polyline
	zones    []planarZone
}

// NewSite builds a placement context. Zones are projected with proj; when
// any are given every footprint must pass ValidatePlacement.
func NewSite(boundary geo.Polygon, roads []geo.Polyline, proj *geo.Projector, zones []Zone) Site {
	return Site{Boundary: boundary, Roads: roads, zones: projectZones(proj, zones)}
}

// placer carries the per-run state shared by every parcel.
type placer struct {
	site      Site
	s         settings.Settings
	inner     []geo.Polygon // site shrunk by SiteSetback, nil when unused
	corridors []geo.Polygon // roads widened by RoadSetback, nil when unused
	accepted  []geo.Polygon // accepted footprints buffered by Spacing/2
}

// PlaceBuildings puts at most one building on every developable parcel,
// in parcel order. A footprint is oriented to face the nearest road, then
// shrunk around its center until it fits or the attempts run out; parcels
// that never fit are skipped.
func PlaceBuildings(parcels []Parcel, site Site, s settings.Settings, r *rng.Rand) ([]Building, *validation.Report) {
	report := validation.NewReport()
	buildings := []Building{}

	pl := &placer{site: site, s: s}
	if s.SiteSetback > 0 {
		inner, ok := geo.Buffer(site.Boundary, -s.SiteSetback)
		if !ok {
			report.AddWarning(validation.Result{
				Level:   validation.LevelGeometry,
				Stage:   "buildings",
				Field:   "site_setback",
				Message: fmt.Sprintf("site setback of %.1f m leaves no buildable land", s.SiteSetback),
			})
			return buildings, report
		}
		pl.inner = inner
	}
	if s.RoadSetback > 0 && len(site.Roads) > 0 {
		corridors, ok := geo.BufferLines(site.Roads, s.RoadWidth/2+s.RoadSetback)
		if ok {
			pl.corridors = corridors
		} else {
			report.AddWarning(validation.Result{
				Level:   validation.LevelGeometry,
				Stage:   "buildings",
				Message: "buffering road setback corridors failed, road setback not enforced",
			})
		}
	}

	skipped, fallbacks := 0, 0
	for _, p := range parcels {
		if p.Green {
			continue
		}
		buildable, fellBack, ok := pl.buildable(p.Polygon)
		if fellBack {
			fallbacks++
		}
		if !ok {
			skipped++
			continue
		}

		centroid := p.Polygon.Centroid()
		bearing := 0.0
		if near, dist, ok := geo.NearestOnNetwork(site.Roads, centroid); ok && dist > 1e-9 {
			bearing = centroid.BearingTo(near)
		}
		w := r.Range(s.MinWidth, s.MaxWidth)
		d := r.Range(s.MinDepth, s.MaxDepth)
		floors := r.IntRange(s.FloorsMin, s.FloorsMax)
		shape := pickShape(s.BuildingShape, r)
		center := buildable.InteriorPoint()

		b, ok := pl.fit(buildable, shape, center, w, d, bearing)
		if !ok {
			skipped++
			continue
		}
		b.ID = fmt.Sprintf("bldg_%04d", len(buildings))
		b.ParcelID = p.ID
		b.Type = s.BuildingType
		b.Floors = floors
		buildings = append(buildings, b)
	}

	if fallbacks > 0 {
		report.AddWarning(validation.Result{
			Level:   validation.LevelGeometry,
			Stage:   "buildings",
			Message: fmt.Sprintf("%d parcels used the scaled fallback for their building setback", fallbacks),
		})
	}
	report.AddInfo(validation.Result{
		Level:   validation.LevelLayout,
		Stage:   "buildings",
		Message: fmt.Sprintf("placed %d buildings, %d parcels skipped", len(buildings), skipped),
	})
	return buildings, report
}

// buildable returns the region of parcel a footprint should cover. The
// second result reports whether the setback buffer had to fall back.
func (pl *placer) buildable(parcel geo.Polygon) (geo.Polygon, bool, bool) {
	s := pl.s
	region, fellBack := parcel, false
	if s.BuildingSetback > 0 {
		if parts, ok := geo.Buffer(parcel, -s.BuildingSetback); ok {
			region, _ = geo.Largest(parts)
		} else {
			region = parcel.ScaleAround(parcel.Centroid(), s.FallbackScale)
			fellBack = true
		}
	}
	if pl.inner != nil {
		var parts []geo.Polygon
		for _, in := range pl.inner {
			if ps, ok := geo.Intersection(region, in); ok {
				parts = append(parts, ps...)
			}
		}
		region, _ = geo.Largest(parts)
	}
	if region.IsEmpty() || region.Area() <= 0 {
		return geo.Polygon{}, fellBack, false
	}
	return region, fellBack, true
}

// fit shrinks the footprint around center until every placement rule
// holds. The accepted footprint's buffer is recorded for later parcels.
func (pl *placer) fit(buildable geo.Polygon, shape settings.BuildingShape, center geo.Point2D, w, d, bearing float64) (Building, bool) {
	s := pl.s
	scale := 1.0
	for attempt := 0; attempt < s.MaxFitAttempts; attempt++ {
		fp := Footprint(shape, center, w*scale, d*scale, bearing)
		if buf, ok := pl.accepts(buildable, fp); ok {
			pl.accepted = append(pl.accepted, buf)
			return Building{
				Footprint:   fp,
				RotationDeg: bearing,
				Shape:       shape,
				Width:       w * scale,
				Depth:       d * scale,
			}, true
		}
		scale *= 1 - s.ShrinkStep
	}
	return Building{}, false
}

// accepts checks fp against the rules and returns its spacing buffer.
func (pl *placer) accepts(buildable, fp geo.Polygon) (geo.Polygon, bool) {
	s := pl.s
	area := fp.Area()
	covered := geo.IntersectionArea(fp, buildable)
	if area <= 0 || covered <= 0 || covered < s.FitCoverage*area {
		return geo.Polygon{}, false
	}
	if !insidePolygon(pl.site.Boundary, fp) {
		return geo.Polygon{}, false
	}
	buf := fp
	if s.Spacing > 0 {
		parts, ok := geo.Buffer(fp, s.Spacing/2)
		if !ok {
			return geo.Polygon{}, false
		}
		buf, _ = geo.Largest(parts)
	}
	for _, other := range pl.accepted {
		if !geo.Disjoint(buf, other) {
			return geo.Polygon{}, false
		}
	}
	for _, c := range pl.corridors {
		if !geo.Disjoint(fp, c) {
			return geo.Polygon{}, false
		}
	}
	if len(pl.site.zones) > 0 && !checkPlacement(fp, s.BuildingType, pl.site.zones).IsValid {
		return geo.Polygon{}, false
	}
	return buf, true
}

// insidePolygon reports whether every edge of q stays inside p.
func insidePolygon(p, q geo.Polygon) bool {
	n := len(q.Vertices)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := q.Edge(i)
		if !p.ContainsSegment(a, b) {
			return false
		}
	}
	return true
}
