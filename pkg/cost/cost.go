// Package cost estimates what it would take to build a generated layout.
package cost

import (
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
)

// Breakdown itemizes costs by category.
type Breakdown struct {
	SiteWorks   float64 `json:"site_works"`
	Roads       float64 `json:"roads"`
	Utilities   float64 `json:"utilities"`
	Buildings   float64 `json:"buildings"`
	Landscaping float64 `json:"landscaping"`
	Total       float64 `json:"total"`
}

// Financing describes how construction is paid for.
type Financing struct {
	InterestRate  float64 `json:"interest_rate"`
	DebtTermYears int     `json:"debt_term_years"`
}

// DefaultFinancing is a 25 year loan at 5%.
func DefaultFinancing() Financing {
	return Financing{InterestRate: 0.05, DebtTermYears: 25}
}

// Report is the complete cost output.
type Report struct {
	Estimate Breakdown `json:"estimate"`

	Summary struct {
		TotalConstruction    float64 `json:"total_construction"`
		PerHectare           float64 `json:"per_hectare"`
		PerDwelling          float64 `json:"per_dwelling"`
		AnnualDebtService    float64 `json:"annual_debt_service"`
		BreakEvenMonthlyRent float64 `json:"break_even_monthly_rent"`
	} `json:"summary"`
}

// Estimate prices a layout bottom-up from its geometry. m must be the
// metrics of the same layout.
func Estimate(l *layout.Layout, m *analytics.Metrics, f Financing) *Report {
	report := &Report{}

	siteWorks := m.Site.AreaM2 * GradingCostPerM2
	roads := m.Roads.LengthM * l.Settings.RoadWidth * RoadCostPerM2
	utilities := m.Roads.LengthM * (WaterCostPerM + SewerCostPerM + ElectricalCostPerM + TelecomCostPerM)

	buildings := 0.0
	for _, b := range l.Buildings {
		rate, ok := BuildCostPerM2[b.Type]
		if !ok {
			rate = DefaultBuildCostM2
		}
		buildings += b.Footprint.Area() * float64(b.Floors) * rate
	}

	landscaping := m.Green.AreaM2*LandscapingCostPerM2 + float64(len(l.Trees))*TreeCost

	report.Estimate = makeBreakdown(siteWorks, roads, utilities, buildings, landscaping)

	total := report.Estimate.Total
	annualDebt := computeAnnualDebtService(total, f.InterestRate, f.DebtTermYears)
	report.Summary.TotalConstruction = total
	if m.Site.AreaHa > 0 {
		report.Summary.PerHectare = total / m.Site.AreaHa
	}
	if units := m.Housing.DwellingUnits; units > 0 {
		report.Summary.PerDwelling = total / float64(units)
		report.Summary.BreakEvenMonthlyRent = annualDebt / float64(units) / 12.0
	}
	report.Summary.AnnualDebtService = annualDebt

	return report
}

// computeAnnualDebtService uses the standard annuity formula.
// P * r(1+r)^n / ((1+r)^n - 1)
// At 0% interest, returns principal / term.
func computeAnnualDebtService(principal, rate float64, termYears int) float64 {
	if termYears <= 0 {
		return 0
	}
	if rate <= 0 {
		return principal / float64(termYears)
	}
	n := float64(termYears)
	factor := math.Pow(1+rate, n)
	return principal * rate * factor / (factor - 1)
}

func makeBreakdown(siteWorks, roads, utilities, buildings, landscaping float64) Breakdown {
	return Breakdown{
		SiteWorks:   siteWorks,
		Roads:       roads,
		Utilities:   utilities,
		Buildings:   buildings,
		Landscaping: landscaping,
		Total:       siteWorks + roads + utilities + buildings + landscaping,
	}
}
