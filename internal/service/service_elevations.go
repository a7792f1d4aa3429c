package service

import (
	"context"
	"fmt"

	"github.com/summitlab/peaksight/internal/adapter"
	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/geo"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/store"
	"github.com/summitlab/peaksight/models"
)

// elevationService is the concrete implementation of [ElevationService].
// It materializes the terrain grid covering every configured region at the
// configured resolution.
type elevationService struct {
	elevations store.ElevationRepository
	api        adapter.ElevationAPI
	regions    []models.Region
	resolution float64

	logger *logger.Logger
}

// NewElevationService constructs an [ElevationService] over the given
// repository and upstream API.
func NewElevationService(elevations store.ElevationRepository, api adapter.ElevationAPI,
	regions []models.Region, cfg config.Analysis, logger *logger.Logger) ElevationService {
	return &elevationService{
		elevations: elevations,
		api:        api,
		regions:    regions,
		resolution: cfg.GridResolution,
		logger:     logger,
	}
}

// Prefetch implements [ElevationService].
func (s *elevationService) Prefetch(ctx context.Context, force bool) (int64, error) {
	log := logger.FromContext(ctx)

	if !force {
		count, err := s.elevations.CountElevations(ctx)
		if err != nil {
			return 0, fmt.Errorf("check elevation grid: %w", err)
		}
		if count > 0 {
			log.Info().Int64("grid_points", count).Msg("elevation grid already populated, skipping fetch")
			return count, nil
		}
	}

	coords := s.gridCoordinates()
	log.Info().Int("grid_points", len(coords)).Float64("resolution", s.resolution).Msg("resolving elevation grid")

	elevations, err := s.api.FetchElevations(ctx, coords)
	if err != nil {
		return 0, fmt.Errorf("resolve elevation grid: %w", err)
	}

	if err = s.elevations.SaveElevations(ctx, coords, elevations); err != nil {
		return 0, fmt.Errorf("store elevation grid: %w", err)
	}

	return s.elevations.CountElevations(ctx)
}

// gridCoordinates builds the deduplicated grid covering every region.
// Overlapping regions contribute each grid point once.
func (s *elevationService) gridCoordinates() []models.Coordinate {
	seen := make(map[string]struct{})
	var coords []models.Coordinate

	// The north/east bounds are excluded. A tiny epsilon keeps the
	// exclusive comparison stable against float accumulation over long
	// lattice walks.
	eps := s.resolution * 1e-6

	for _, region := range s.regions {
		for lat := region.South; lat < region.North-eps; lat += s.resolution {
			for lon := region.West; lon < region.East-eps; lon += s.resolution {
				snappedLat := geo.SnapToGrid(lat, s.resolution)
				snappedLon := geo.SnapToGrid(lon, s.resolution)

				key := geo.GridKey(snappedLat, snappedLon)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				coords = append(coords, models.Coordinate{Lat: snappedLat, Lon: snappedLon})
			}
		}
	}

	return coords
}
