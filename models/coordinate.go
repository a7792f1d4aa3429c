package models

// Coordinate is a bare lat/lon pair, used for elevation-grid points and
// batched elevation lookups.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}
