package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/cost"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

func printResult(w io.Writer, r validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", r.Level, r.Message)
	if r.Field != "" {
		if r.Actual != nil {
			fmt.Fprintf(w, "    -> %s = %v\n", r.Field, r.Actual)
		} else {
			fmt.Fprintf(w, "    -> %s\n", r.Field)
		}
	}
	if r.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", r.Expected)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			printResult(w, warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printMetrics(w io.Writer, m *analytics.Metrics) {
	fmt.Fprintln(w, "Layout Metrics")
	fmt.Fprintln(w, "==============")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	fmt.Fprintln(w, "----")
	fmt.Fprintf(w, "  Area:                 %s ha (%s m²)\n", formatFloat(m.Site.AreaHa, 2), formatNumber(m.Site.AreaM2))
	fmt.Fprintf(w, "  Perimeter:            %s m\n", formatNumber(m.Site.PerimeterM))
	fmt.Fprintf(w, "  Compactness:          %s\n", formatFloat(m.Site.Compactness, 3))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Roads")
	fmt.Fprintln(w, "-----")
	fmt.Fprintf(w, "  Nodes / edges:        %d / %d\n", m.Roads.Nodes, m.Roads.Edges)
	fmt.Fprintf(w, "  Length:               %s m (%s m/ha)\n", formatNumber(m.Roads.LengthM), formatFloat(m.Roads.DensityMPerHa, 1))
	fmt.Fprintf(w, "  Growth:               %d rounds, stopped: %s\n", m.Roads.Rounds, m.Roads.StopReason)
	fmt.Fprintf(w, "  Attractors left:      %d of %d\n", m.Roads.Unconsumed, m.Roads.Attractors)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Parcels")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "  Blocks / parcels:     %d / %d\n", m.Blocks, m.Parcels.Count)
	fmt.Fprintf(w, "  Mean area:            %s m² (sd %s)\n", formatNumber(m.Parcels.MeanAreaM2), formatNumber(m.Parcels.StdDevAreaM2))
	fmt.Fprintf(w, "  Range:                %s - %s m²\n", formatNumber(m.Parcels.MinAreaM2), formatNumber(m.Parcels.MaxAreaM2))
	fmt.Fprintf(w, "  Green space:          %d parcels, %s%% (target %s%%)\n",
		m.Green.Count, formatFloat(100*m.Green.Ratio, 1), formatFloat(100*m.Green.TargetRatio, 1))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Buildings")
	fmt.Fprintln(w, "---------")
	fmt.Fprintf(w, "  Count:                %d (%d parcels skipped)\n", m.Buildings.Count, m.Buildings.ParcelsSkipped)
	fmt.Fprintf(w, "  Footprint:            %s m² (coverage %s%%)\n", formatNumber(m.Buildings.FootprintAreaM2), formatFloat(100*m.Buildings.Coverage, 1))
	fmt.Fprintf(w, "  Gross floor area:     %s m² (FAR %s)\n", formatNumber(m.Buildings.GrossFloorAreaM2), formatFloat(m.Buildings.FloorAreaRatio, 2))
	fmt.Fprintf(w, "  Mean floors:          %s\n", formatFloat(m.Buildings.MeanFloors, 1))
	shapes := make([]string, 0, len(m.Buildings.ByShape))
	for s := range m.Buildings.ByShape {
		shapes = append(shapes, s)
	}
	sort.Strings(shapes)
	for _, s := range shapes {
		fmt.Fprintf(w, "    %-18s %d\n", s, m.Buildings.ByShape[s])
	}
	fmt.Fprintf(w, "  Dwellings:            %d (%s du/ha)\n", m.Housing.DwellingUnits, formatFloat(m.Housing.DensityDUPerHa, 1))
	fmt.Fprintf(w, "  Population:           %d (%d school age)\n", m.Housing.Population, m.Housing.Students)
	fmt.Fprintf(w, "  Trees:                %d park, %d street\n", m.Trees["park"], m.Trees["street"])
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Services")
	fmt.Fprintln(w, "--------")
	fmt.Fprintf(w, "  %-20s %10s %12s\n", "Service", "Required", "Per unit")
	for _, s := range m.Services {
		fmt.Fprintf(w, "  %-20s %10d %12s\n", s.Service, s.Required, fmt.Sprintf("%d %s", s.Threshold, s.Metric))
	}
}

func printCostReport(w io.Writer, r *cost.Report) {
	fmt.Fprintln(w, "Cost Estimate")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	est := r.Estimate
	rows := []struct {
		label string
		val   float64
	}{
		{"Site works", est.SiteWorks},
		{"Roads", est.Roads},
		{"Utilities", est.Utilities},
		{"Buildings", est.Buildings},
		{"Landscaping", est.Landscaping},
		{"TOTAL", est.Total},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-18s %14s\n", row.label, formatMoney(row.val))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "  Total construction:     $%s\n", formatMoney(r.Summary.TotalConstruction))
	fmt.Fprintf(w, "  Per hectare:            $%s\n", formatMoney(r.Summary.PerHectare))
	fmt.Fprintf(w, "  Per dwelling:           $%s\n", formatMoney(r.Summary.PerDwelling))
	fmt.Fprintf(w, "  Annual debt service:    $%s\n", formatMoney(r.Summary.AnnualDebtService))
	fmt.Fprintf(w, "  Break-even rent/month:  $%s\n", formatMoney(r.Summary.BreakEvenMonthlyRent))
}

func formatMoney(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.0fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}

func formatFloat(v float64, prec int) string {
	return fmt.Sprintf("%.*f", prec, v)
}

func formatNumber(v float64) string {
	if v < 0 {
		return "-" + formatNumber(-v)
	}
	s := fmt.Sprintf("%.0f", v)
	n := len(s)
	if n <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (n-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
