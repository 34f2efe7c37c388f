package domain

// Segment is one stretch of the hydrogen transport network (road, rail, or
// pipeline). Reference data only: imported and stored alongside the other
// geospatial tables, not consulted by the optimization pipeline.
type Segment struct {
	NetworkType        string
	Name               string
	State              string
	StartLat           float64
	StartLon           float64
	EndLat             float64
	EndLon             float64
	CapacityTonnesYear float64
	Status             string
}
