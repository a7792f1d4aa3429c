package models

// Region is a named geographic bounding box used to scope peak and
// elevation prefetching.
type Region struct {
	// Name is a human-readable region label (e.g. "Colorado").
	Name string `json:"name"`

	// South and North bound the latitude range in decimal degrees.
	South float64 `json:"south"`
	North float64 `json:"north"`

	// West and East bound the longitude range in decimal degrees.
	West float64 `json:"west"`
	East float64 `json:"east"`
}

// DefaultRegions returns the built-in set of regions covered by the
// prefetchers: the high-mountain western US states plus Alaska.
func DefaultRegions() []Region {
	return []Region{
		{Name: "Colorado", South: 37.0, North: 41.0, West: -109.0, East: -102.0},
		{Name: "California", South: 35.5, North: 42.0, West: -124.5, East: -114.0},
		{Name: "Wyoming", South: 41.0, North: 45.0, West: -111.0, East: -104.0},
		{Name: "New Mexico", South: 31.3, North: 37.0, West: -109.0, East: -103.0},
		{Name: "Alaska", South: 51.0, North: 71.5, West: -180.0, East: -130.0},
		{Name: "Pacific NW", South: 43.0, North: 49.0, West: -125.0, East: -116.0},
	}
}
