package validation

import (
	"errors"
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

// ValidateRequest checks a site request before any computation and
// collects every problem rather than stopping at the first.
func ValidateRequest(req *spec.SiteRequest) *Report {
	r := NewReport()
	validateBoundary(req.Boundary.Ring, "boundary", r)
	validateSettings(req, r)
	for i, z := range req.Zones {
		field := fmt.Sprintf("zones[%d]", i)
		if z.Kind == "" {
			r.AddError(Result{
				Level:    LevelInput,
				Message:  "zone kind must not be empty",
				Field:    field + ".kind",
				Expected: "residential, commercial, green_space, amenity or solar",
			})
		}
		validateBoundary(z.Ring.Ring, field+".ring", r)
	}
	return r
}

func validateBoundary(ring geo.Ring, field string, r *Report) {
	norm, err := geo.NormalizeRing(ring)
	if err != nil {
		res := Result{
			Level:   LevelInput,
			Message: err.Error(),
			Field:   field,
			Actual:  len(ring),
		}
		switch {
		case errors.Is(err, geo.ErrTooFewPoints):
			res.Expected = ">= 3 distinct points"
		case errors.Is(err, geo.ErrOutOfRange):
			res.Expected = "latitude in [-90, 90], longitude in [-180, 180]"
			res.Actual = nil
		}
		r.AddError(res)
		return
	}
	if err := geo.CheckRing(norm); err != nil {
		if _, rerr := geo.RepairRing(norm); rerr != nil {
			r.AddError(Result{
				Level:   LevelGeometry,
				Message: fmt.Sprintf("%v: %v", err, rerr),
				Field:   field,
			})
			return
		}
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     err.Error(),
			Field:       field,
			Suggestions: []string{"the ring will be repaired by keeping its largest simple part"},
		})
	}
}

func validateSettings(req *spec.SiteRequest, r *Report) {
	s, err := req.Settings()
	if err != nil {
		r.AddError(Result{
			Level:   LevelInput,
			Message: err.Error(),
			Field:   "settings",
		})
		return
	}
	if s.GreenspaceRatio > 0.9 {
		r.AddWarning(Result{
			Level:    LevelInput,
			Message:  "greenspace_ratio is capped at 0.9",
			Field:    "overrides.greenspace_ratio",
			Actual:   s.GreenspaceRatio,
			Expected: "<= 0.9",
		})
	}
	if s.MinParcelArea < s.MinWidth*s.MinDepth {
		r.AddWarning(Result{
			Level:       LevelInput,
			Message:     "min_parcel_area is smaller than the smallest building footprint",
			Field:       "overrides.min_parcel_area",
			Actual:      s.MinParcelArea,
			Expected:    fmt.Sprintf(">= %.0f", s.MinWidth*s.MinDepth),
			Suggestions: []string{"expect many parcels without buildings"},
		})
	}
}
