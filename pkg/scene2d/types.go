package scene2d

// Scene2D is the planar scene for an SVG top-down renderer. Coordinates are
// meters in the run's projection, X east and Y north.
type Scene2D struct {
	Metadata  Metadata       `json:"metadata"`
	Boundary  [][2]float64   `json:"boundary"`
	Roads     []Road2D       `json:"roads"`
	Blocks    [][][2]float64 `json:"blocks"`
	Parcels   []Parcel2D     `json:"parcels"`
	Buildings []Building2D   `json:"buildings"`
	Trees     []Tree2D       `json:"trees"`
	Summary   Summary        `json:"summary"`
}

// Metadata holds run-level data.
type Metadata struct {
	Seed    uint32  `json:"seed"`
	Density string  `json:"density"`
	MinX    float64 `json:"min_x"`
	MinY    float64 `json:"min_y"`
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
}

// Road2D is a road centerline.
type Road2D struct {
	ID     string       `json:"id"`
	Points [][2]float64 `json:"points"`
	Width  float64      `json:"width"`
}

// Parcel2D is a parcel outline.
type Parcel2D struct {
	ID      string       `json:"id"`
	Polygon [][2]float64 `json:"polygon"`
	Green   bool         `json:"green"`
}

// Building2D is a building footprint.
type Building2D struct {
	ID      string       `json:"id"`
	Polygon [][2]float64 `json:"polygon"`
	Floors  int          `json:"floors"`
	Shape   string       `json:"shape"`
}

// Tree2D is a tree position and canopy.
type Tree2D struct {
	Position [2]float64 `json:"position"`
	CanopyD  float64    `json:"canopy_diameter"`
}

// Summary holds aggregate counts.
type Summary struct {
	Roads       int `json:"roads"`
	Blocks      int `json:"blocks"`
	Parcels     int `json:"parcels"`
	GreenSpaces int `json:"green_spaces"`
	Buildings   int `json:"buildings"`
	ParkTrees   int `json:"park_trees"`
	StreetTrees int `json:"street_trees"`
}
