package models

import (
	"fmt"
	"strings"
)

// LOSReport is the outcome of a single line-of-sight analysis between two
// peaks. Sample slices are parallel: SampleKM[i] is the distance along the
// path at which TerrainM[i] and SightM[i] were evaluated.
type LOSReport struct {
	Pair PeakPair `json:"pair"`

	// HorizonKM is the theoretical radio-horizon limit for the pair,
	// 3.57·(√e1 + √e2) with elevations in meters.
	HorizonKM float64 `json:"horizon_km"`

	// CurvatureDropM is how far the Earth's surface falls below the chord
	// at the path midpoint, in meters, using the refraction-corrected
	// effective radius.
	CurvatureDropM float64 `json:"curvature_drop_m"`

	// Clear reports whether every terrain sample lies at or below the
	// sight line.
	Clear bool `json:"clear"`

	// SampleKM holds the distance of each sample point along the path.
	SampleKM []float64 `json:"-"`

	// TerrainM holds the terrain elevation at each sample point. The first
	// and last entries are pinned to the catalogued peak elevations.
	TerrainM []float64 `json:"-"`

	// SightM holds the curvature-corrected sight-line elevation at each
	// sample point.
	SightM []float64 `json:"-"`

	// ProfilePath is the path of the rendered elevation-profile image,
	// empty when no profile was rendered for this pair.
	ProfilePath string `json:"profile_path,omitempty"`
}

// Statistics renders the human-readable report block for the pair. The
// layout mirrors the statistics.txt format produced by earlier snapshots of
// the analysis, so downstream diffing keeps working.
func (r LOSReport) Statistics() string {
	verdict := "BLOCKED"
	if r.Clear {
		verdict = "CLEAR"
	}

	lines := []string{
		fmt.Sprintf("Peak 1: %s (%v, %v)", r.Pair.First.Name, r.Pair.First.Lat, r.Pair.First.Lon),
		fmt.Sprintf("Peak 2: %s (%v, %v)", r.Pair.Second.Name, r.Pair.Second.Lat, r.Pair.Second.Lon),
		fmt.Sprintf("Great-circle distance: %.2f km", r.Pair.DistanceKM),
		fmt.Sprintf("Theoretical LOS limit: %.2f km", r.HorizonKM),
		fmt.Sprintf("Earth curvature drop at midpoint: %.1f m (with refraction)", r.CurvatureDropM),
		fmt.Sprintf("Line-of-sight is %s by terrain.", verdict),
	}

	return strings.Join(lines, "\n")
}
