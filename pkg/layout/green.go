package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// AllocateGreenSpace marks the best-scoring parcels as green until their
// area reaches the green-space ratio of the total. The input slice is not
// modified.
//
// Accessible scoring counts attractor points within WalkRadius of the
// parcel centroid and adds GreenAreaBonus·√area. Central scoring prefers
// parcels nearest the site center. Ties keep parcel order.
func AllocateGreenSpace(parcels []Parcel, attractors []geo.Point2D, center geo.Point2D, s settings.Settings) ([]Parcel, *validation.Report) {
	report := validation.NewReport()
	out := make([]Parcel, len(parcels))
	copy(out, parcels)

	ratio := s.EffectiveGreenspaceRatio()
	if ratio <= 0 || len(out) == 0 {
		return out, report
	}

	total := 0.0
	for _, p := range out {
		total += p.AreaM2
	}
	target := ratio * total

	scores := make([]float64, len(out))
	for i, p := range out {
		c := p.Polygon.Centroid()
		switch s.GreenSpaceType {
		case settings.GreenCentral:
			scores[i] = -c.Distance(center)
		default:
			near := 0
			for _, a := range attractors {
				if a.Distance(c) <= s.WalkRadius {
					near++
				}
			}
			scores[i] = float64(near) + s.GreenAreaBonus*math.Sqrt(p.AreaM2)
		}
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	green, count := 0.0, 0
	for _, i := range order {
		if green >= target {
			break
		}
		out[i].Green = true
		green += out[i].AreaM2
		count++
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelLayout,
		Stage:   "green",
		Message: fmt.Sprintf("%d green parcels, %.1f%% of parcel area (target %.1f%%)", count, 100*green/total, 100*ratio),
	})
	return out, report
}
