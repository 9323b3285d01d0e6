package analytics

// Metrics summarizes one generated layout.
type Metrics struct {
	Site      SiteMetrics     `json:"site"`
	Roads     RoadMetrics     `json:"roads"`
	Blocks    int             `json:"blocks"`
	Parcels   ParcelStats     `json:"parcels"`
	Green     GreenMetrics    `json:"green"`
	Buildings BuildingStats   `json:"buildings"`
	Housing   HousingEstimate `json:"housing"`
	Services  []ServiceCount  `json:"services"`
	Trees     map[string]int  `json:"trees"`
}

// SiteMetrics describes the boundary.
type SiteMetrics struct {
	AreaM2      float64 `json:"area_m2"`
	AreaHa      float64 `json:"area_ha"`
	PerimeterM  float64 `json:"perimeter_m"`
	HullAreaM2  float64 `json:"hull_area_m2"`
	Compactness float64 `json:"compactness"` // area / convex hull area
}

// RoadMetrics describes the grown network.
type RoadMetrics struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	Rounds        int     `json:"rounds"`
	StopReason    string  `json:"stop_reason"`
	LengthM       float64 `json:"length_m"`
	DensityMPerHa float64 `json:"density_m_per_ha"`
	Attractors    int     `json:"attractors"`
	Unconsumed    int     `json:"unconsumed_attractors"`
}

// ParcelStats holds parcel area statistics.
type ParcelStats struct {
	Count        int     `json:"count"`
	TotalAreaM2  float64 `json:"total_area_m2"`
	MeanAreaM2   float64 `json:"mean_area_m2"`
	StdDevAreaM2 float64 `json:"stddev_area_m2"`
	MinAreaM2    float64 `json:"min_area_m2"`
	MaxAreaM2    float64 `json:"max_area_m2"`
}

// GreenMetrics compares allocated green space with its target.
type GreenMetrics struct {
	Count       int     `json:"count"`
	AreaM2      float64 `json:"area_m2"`
	Ratio       float64 `json:"ratio"`
	TargetRatio float64 `json:"target_ratio"`
}

// BuildingStats holds building totals.
type BuildingStats struct {
	Count            int            `json:"count"`
	FootprintAreaM2  float64        `json:"footprint_area_m2"`
	GrossFloorAreaM2 float64        `json:"gross_floor_area_m2"`
	MeanFloors       float64        `json:"mean_floors"`
	Coverage         float64        `json:"coverage"` // footprint / site area
	FloorAreaRatio   float64        `json:"floor_area_ratio"`
	ByShape          map[string]int `json:"by_shape"`
	ParcelsSkipped   int            `json:"parcels_skipped"`
}

// HousingEstimate is the dwelling and population yield of the buildings.
type HousingEstimate struct {
	DwellingUnits  int     `json:"dwelling_units"`
	Population     int     `json:"population"`
	Students       int     `json:"students"`
	DensityDUPerHa float64 `json:"density_du_per_ha"`
}

// ServiceCount holds the required count for one service type.
type ServiceCount struct {
	Service    string `json:"service"`
	Threshold  int    `json:"threshold_per_unit"`
	Required   int    `json:"required_count"`
	Metric     string `json:"metric"`
	Population int    `json:"relevant_population"`
}
