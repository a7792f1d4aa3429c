// Package adapter contains the outbound HTTP clients of the application:
// the Overpass API client that catalogues peaks and the Open-Elevation
// client that resolves elevation grids. Both are built on resty and are the
// only components that talk to the network.
package adapter

import (
	"context"

	"github.com/summitlab/peaksight/models"
)

// PeakSource fetches peak nodes for a bounded region.
type PeakSource interface {
	// FetchPeaks returns every catalogued peak inside the region whose
	// elevation is at least minElevationM meters.
	FetchPeaks(ctx context.Context, region models.Region, minElevationM float64) ([]models.Peak, error)
}

// ElevationAPI resolves terrain elevations for batches of coordinates.
type ElevationAPI interface {
	// FetchElevations returns one elevation per input coordinate, in
	// order. Chunks that fail upstream degrade to 0.0 entries rather than
	// failing the whole batch.
	FetchElevations(ctx context.Context, coords []models.Coordinate) ([]float64, error)
}
