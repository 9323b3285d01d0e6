package cost

// Baseline unit costs for a greenfield estimate.
const (
	GradingCostPerM2     = 12.0   // $/m² of site, clearing and earthworks
	RoadCostPerM2        = 180.0  // $/m² of paved carriageway
	WaterCostPerM        = 500.0  // $/m of main
	SewerCostPerM        = 600.0  // $/m of main
	ElectricalCostPerM   = 400.0  // $/m of conduit
	TelecomCostPerM      = 200.0  // $/m of duct
	LandscapingCostPerM2 = 45.0   // $/m² of green space
	TreeCost             = 650.0  // $ per planted tree
	DefaultBuildCostM2   = 2500.0 // $/m² floor area for unlisted types
	M2PerHa              = 10000.0
)

// BuildCostPerM2 is the floor-area construction cost by building type.
var BuildCostPerM2 = map[string]float64{
	"house_detached": 1900,
	"house_semi":     1800,
	"house_terraced": 1700,
	"flat_block":     2200,
	"mixed_use":      2400,
}
