package models

// MetersPerFoot is the exact international foot-to-meter conversion factor.
const MetersPerFoot = 0.3048

// Peak represents a single mountain summit catalogued from OpenStreetMap.
// JSON field names match the on-disk peaks_cache.json snapshot format, so
// exported caches stay interchangeable with earlier snapshots.
type Peak struct {
	// Name is the summit name from the OSM "name" tag. Unnamed nodes are
	// catalogued as "Peak_<osm id>".
	Name string `json:"name"`

	// Lat is the latitude of the summit node in decimal degrees.
	Lat float64 `json:"lat"`

	// Lon is the longitude of the summit node in decimal degrees.
	Lon float64 `json:"lon"`

	// ElevationM is the summit elevation in meters from the OSM "ele" tag.
	ElevationM float64 `json:"elevation_m"`
}

// TableName returns the name of the database table
// associated with the Peak model.
func (p Peak) TableName() string {
	return "peaks"
}

// FeetToMeters converts an elevation threshold given in feet to meters.
func FeetToMeters(feet float64) float64 {
	return feet * MetersPerFoot
}
