package analytics

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/routing"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Sites whose area is less than this share of their convex hull are
// flagged as irregular.
const minCompactness = 0.5

// validateMetrics flags results that fall short of their targets. None of
// them is an error: the layout is still internally consistent.
func validateMetrics(m *Metrics, report *validation.Report) {
	validateGreenShare(m, report)
	validateBuildingYield(m, report)
	validateCompactness(m, report)
	validateGrowth(m, report)
}

func validateGreenShare(m *Metrics, report *validation.Report) {
	if m.Parcels.Count == 0 || m.Green.TargetRatio == 0 {
		return
	}
	if m.Green.Ratio+1e-9 < m.Green.TargetRatio {
		report.AddWarning(validation.Result{
			Level:    validation.LevelLayout,
			Stage:    "green",
			Message:  fmt.Sprintf("green share %.1f%% is below the %.1f%% target", 100*m.Green.Ratio, 100*m.Green.TargetRatio),
			Field:    "greenspace_ratio",
			Actual:   m.Green.Ratio,
			Expected: fmt.Sprintf(">= %.2f", m.Green.TargetRatio),
		})
	}
}

func validateBuildingYield(m *Metrics, report *validation.Report) {
	developable := m.Parcels.Count - m.Green.Count
	if developable > 0 && m.Buildings.Count == 0 {
		report.AddWarning(validation.Result{
			Level:   validation.LevelLayout,
			Stage:   "buildings",
			Message: fmt.Sprintf("no building fits on any of %d developable parcels", developable),
			Suggestions: []string{
				"Reduce min_building_size or building_setback",
				"Lower fit_coverage",
			},
		})
	}
}

func validateCompactness(m *Metrics, report *validation.Report) {
	if m.Site.HullAreaM2 > 0 && m.Site.Compactness < minCompactness {
		report.AddWarning(validation.Result{
			Level:    validation.LevelGeometry,
			Message:  fmt.Sprintf("site is irregular: %.0f%% of its convex hull", 100*m.Site.Compactness),
			Field:    "boundary",
			Actual:   m.Site.Compactness,
			Expected: fmt.Sprintf(">= %.2f", minCompactness),
		})
	}
}

func validateGrowth(m *Metrics, report *validation.Report) {
	if m.Roads.StopReason == string(routing.StopRoundCap) {
		report.AddInfo(validation.Result{
			Level:   validation.LevelLayout,
			Stage:   "roads",
			Message: fmt.Sprintf("road growth stopped at the %d round cap with %d attractors unconsumed", m.Roads.Rounds, m.Roads.Unconsumed),
		})
	}
}
