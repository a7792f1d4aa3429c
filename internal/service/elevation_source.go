package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/summitlab/peaksight/internal/geo"
	"github.com/summitlab/peaksight/internal/los"
	"github.com/summitlab/peaksight/internal/store"
)

// gridElevationSource adapts the elevation repository to [los.ElevationSource].
// Coordinates are snapped to the grid before lookup; points outside the
// cached area resolve to sea level rather than an error, matching the
// behavior of the JSON snapshot cache.
type gridElevationSource struct {
	elevations store.ElevationRepository
	resolution float64
}

// NewGridElevationSource wraps the repository as a [los.ElevationSource]
// using the given grid resolution in degrees.
func NewGridElevationSource(elevations store.ElevationRepository, resolution float64) los.ElevationSource {
	return &gridElevationSource{
		elevations: elevations,
		resolution: resolution,
	}
}

func (s *gridElevationSource) ElevationAt(ctx context.Context, lat, lon float64) (float64, error) {
	key := geo.GridKey(geo.SnapToGrid(lat, s.resolution), geo.SnapToGrid(lon, s.resolution))

	elevation, err := s.elevations.GetElevation(ctx, key)
	if errors.Is(err, store.ErrElevationNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("grid lookup %q: %w", key, err)
	}

	return elevation, nil
}
