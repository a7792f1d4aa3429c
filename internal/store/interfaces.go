package store

import (
	"context"

	"github.com/summitlab/peaksight/models"
)

// PeakRepository persists the peak catalogue.
type PeakRepository interface {
	// SavePeaks inserts peaks into the catalogue; peaks already present
	// (same name and coordinates) are ignored.
	SavePeaks(ctx context.Context, peaks []models.Peak) error

	// FindPeaks returns catalogued peaks with elevation of at least
	// minElevationM meters, ordered by name. A zero threshold returns the
	// full catalogue.
	FindPeaks(ctx context.Context, minElevationM float64) ([]models.Peak, error)

	// CountPeaks reports the catalogue size.
	CountPeaks(ctx context.Context) (int64, error)

	// DeleteAllPeaks empties the catalogue.
	DeleteAllPeaks(ctx context.Context) error
}

// ElevationRepository persists the prefetched elevation grid.
type ElevationRepository interface {
	// SaveElevations stores one grid point per coordinate. Existing grid
	// points are overwritten.
	SaveElevations(ctx context.Context, coords []models.Coordinate, elevations []float64) error

	// GetElevation resolves a canonical grid key (see geo.GridKey).
	// Returns ErrElevationNotFound when the key is not cached.
	GetElevation(ctx context.Context, key string) (float64, error)

	// AllElevations returns the whole grid keyed by canonical grid key.
	AllElevations(ctx context.Context) (map[string]float64, error)

	// CountElevations reports the number of cached grid points.
	CountElevations(ctx context.Context) (int64, error)

	// DeleteAllElevations empties the grid cache.
	DeleteAllElevations(ctx context.Context) error
}

// RunRepository persists analysis runs and their per-pair results.
type RunRepository interface {
	// SaveRun records a finished run together with its reports.
	SaveRun(ctx context.Context, run models.AnalysisRun, reports []models.LOSReport) error

	// ListRuns returns recorded runs, newest first.
	ListRuns(ctx context.Context) ([]models.AnalysisRun, error)

	// GetRun returns a single run by ID. Returns ErrRunNotFound when no
	// such run was recorded.
	GetRun(ctx context.Context, runID string) (models.AnalysisRun, error)

	// DeleteAllRuns removes every recorded run and result.
	DeleteAllRuns(ctx context.Context) error
}
