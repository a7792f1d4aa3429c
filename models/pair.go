package models

// PeakPair is an unordered pair of peaks whose geodesic separation falls
// inside the configured distance band. Pairs are emitted once, with First
// appearing earlier than Second in the catalogue order.
type PeakPair struct {
	First  Peak `json:"first"`
	Second Peak `json:"second"`

	// DistanceKM is the geodesic (WGS84) distance between the two summits
	// in kilometers.
	DistanceKM float64 `json:"distance_km"`
}
