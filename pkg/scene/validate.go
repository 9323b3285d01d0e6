package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/routing"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// ContainmentToleranceDeg is how far, in degrees, a derived vertex may sit
// outside the boundary and still count as contained.
const ContainmentToleranceDeg = 1e-6

// ValidateLayout checks a finished layout against the generator's
// guarantees: containment, area floors, building spacing, one building per
// developable parcel, unique ids and a forest-shaped road graph.
func ValidateLayout(l *layout.Layout) *validation.Report {
	r := validation.NewReport()

	if l == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelLayout,
			Message: "layout is nil",
		})
		return r
	}

	validateIDs(l, r)
	validateForest(l, r)
	validateContainment(l, r)
	validateAreaFloors(l, r)
	validateBuildings(l, r)

	return r
}

func validateIDs(l *layout.Layout, r *validation.Report) {
	seen := make(map[string]string)
	check := func(kind, id string, i int) {
		field := fmt.Sprintf("%s[%d].id", kind, i)
		if id == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelLayout,
				Message:  fmt.Sprintf("%s at index %d has empty ID", kind, i),
				Field:    field,
				Expected: "non-empty string",
			})
			return
		}
		if prev, exists := seen[id]; exists {
			r.AddError(validation.Result{
				Level:   validation.LevelLayout,
				Message: fmt.Sprintf("duplicate ID %q at %s and %s", id, prev, field),
				Field:   field,
				Actual:  id,
			})
		}
		seen[id] = field
	}
	for i, b := range l.Blocks {
		check("blocks", b.ID, i)
	}
	for i, p := range l.Parcels {
		check("parcels", p.ID, i)
	}
	for i, b := range l.Buildings {
		check("buildings", b.ID, i)
	}
	for i, t := range l.Trees {
		check("trees", t.ID, i)
	}
}

func validateForest(l *layout.Layout, r *validation.Report) {
	if err := routing.CheckForest(l.Network.Graph); err != nil {
		r.AddError(validation.Result{
			Level:   validation.LevelLayout,
			Stage:   "roads",
			Message: err.Error(),
			Field:   "network.graph",
		})
	}
}

func validateContainment(l *layout.Layout, r *validation.Report) {
	tol := ContainmentToleranceDeg * math.Pi / 180 * geo.EarthRadius
	check := func(kind, id string, p geo.Polygon) {
		if !l.Boundary.ContainsPolygon(p, tol) {
			r.AddError(validation.Result{
				Level:   validation.LevelLayout,
				Message: fmt.Sprintf("%s %s extends outside the site boundary", kind, id),
				Field:   id,
			})
		}
	}
	for _, b := range l.Blocks {
		check("block", b.ID, b.Polygon)
	}
	for _, p := range l.Parcels {
		check("parcel", p.ID, p.Polygon)
	}
	for _, b := range l.Buildings {
		check("building", b.ID, b.Footprint)
	}
}

func validateAreaFloors(l *layout.Layout, r *validation.Report) {
	s := l.Settings
	for _, b := range l.Blocks {
		if b.AreaM2 < s.MinBlockArea {
			r.AddError(validation.Result{
				Level:    validation.LevelLayout,
				Message:  fmt.Sprintf("block %s is below the minimum block area", b.ID),
				Field:    b.ID,
				Actual:   b.AreaM2,
				Expected: fmt.Sprintf(">= %.1f m²", s.MinBlockArea),
			})
		}
	}
	for _, p := range l.Parcels {
		if p.AreaM2 < s.MinParcelArea {
			r.AddError(validation.Result{
				Level:    validation.LevelLayout,
				Message:  fmt.Sprintf("parcel %s is below the minimum parcel area", p.ID),
				Field:    p.ID,
				Actual:   p.AreaM2,
				Expected: fmt.Sprintf(">= %.1f m²", s.MinParcelArea),
			})
		}
	}
}

func validateBuildings(l *layout.Layout, r *validation.Report) {
	parcels := make(map[string]layout.Parcel, len(l.Parcels))
	for _, p := range l.Parcels {
		parcels[p.ID] = p
	}
	used := make(map[string]string)
	for _, b := range l.Buildings {
		p, ok := parcels[b.ParcelID]
		switch {
		case !ok:
			r.AddError(validation.Result{
				Level:   validation.LevelLayout,
				Message: fmt.Sprintf("building %s references unknown parcel %q", b.ID, b.ParcelID),
				Field:   b.ID,
			})
		case p.Green:
			r.AddError(validation.Result{
				Level:   validation.LevelLayout,
				Message: fmt.Sprintf("building %s is on green space %s", b.ID, p.ID),
				Field:   b.ID,
			})
		}
		if other, dup := used[b.ParcelID]; dup {
			r.AddError(validation.Result{
				Level:   validation.LevelLayout,
				Message: fmt.Sprintf("buildings %s and %s share parcel %s", other, b.ID, b.ParcelID),
				Field:   b.ID,
			})
		}
		used[b.ParcelID] = b.ID
	}

	half := l.Settings.Spacing / 2
	buffered := make([]geo.Polygon, len(l.Buildings))
	for i, b := range l.Buildings {
		buffered[i] = b.Footprint
		if half <= 0 {
			continue
		}
		parts, ok := geo.Buffer(b.Footprint, half)
		if !ok {
			r.AddWarning(validation.Result{
				Level:   validation.LevelGeometry,
				Message: fmt.Sprintf("could not buffer building %s, spacing not checked", b.ID),
				Field:   b.ID,
			})
			continue
		}
		buffered[i], _ = geo.Largest(parts)
	}
	for i := range buffered {
		for j := i + 1; j < len(buffered); j++ {
			if !geo.Disjoint(buffered[i], buffered[j]) {
				r.AddError(validation.Result{
					Level:    validation.LevelLayout,
					Message:  fmt.Sprintf("buildings %s and %s are closer than the configured spacing", l.Buildings[i].ID, l.Buildings[j].ID),
					Field:    l.Buildings[j].ID,
					Expected: fmt.Sprintf(">= %.1f m apart", l.Settings.Spacing),
				})
			}
		}
	}
}
