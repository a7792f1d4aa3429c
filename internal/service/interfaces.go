package service

import (
	"context"

	"github.com/summitlab/peaksight/models"
)

// PeakService maintains the peak catalogue.
type PeakService interface {
	// Prefetch fills the catalogue from the upstream peak source and
	// returns the catalogue size. When the catalogue is already populated
	// and force is false the fetch is skipped.
	Prefetch(ctx context.Context, force bool) (int64, error)

	// List returns the catalogued peaks above the configured elevation
	// threshold, ordered by name.
	List(ctx context.Context) ([]models.Peak, error)
}

// ElevationService maintains the prefetched elevation grid.
type ElevationService interface {
	// Prefetch resolves the elevation grid covering every configured
	// region and returns the grid size. When the grid is already populated
	// and force is false the fetch is skipped.
	Prefetch(ctx context.Context, force bool) (int64, error)
}

// PairService derives candidate peak pairs from the catalogue.
type PairService interface {
	// FindPairs returns every unordered peak pair whose geodesic distance
	// falls inside the configured band, each carrying its distance.
	FindPairs(ctx context.Context) ([]models.PeakPair, error)
}

// AnalysisService runs line-of-sight analyses and records their outcomes.
type AnalysisService interface {
	// Run analyzes every candidate pair, renders profiles for clear pairs,
	// and persists the run. The returned reports are ordered like the
	// pairs they were derived from.
	Run(ctx context.Context) (models.AnalysisRun, []models.LOSReport, error)

	// AnalyzePair analyzes a single pair addressed by peak names. The
	// result is not persisted.
	AnalyzePair(ctx context.Context, firstName, secondName string) (models.LOSReport, error)

	// ListRuns returns recorded runs, newest first.
	ListRuns(ctx context.Context) ([]models.AnalysisRun, error)

	// GetRun returns a single recorded run by ID.
	GetRun(ctx context.Context, runID string) (models.AnalysisRun, error)
}

// MaintenanceService removes every cached artifact.
type MaintenanceService interface {
	// Clean empties the peak catalogue, the elevation grid, the recorded
	// runs, and the profile image directory.
	Clean(ctx context.Context) error
}

// AppInfoService exposes build-time application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ProfileRenderer draws the elevation profile of a finished report and
// returns the path of the written image.
type ProfileRenderer interface {
	Render(report models.LOSReport) (string, error)
}

// Analyzer produces a full line-of-sight report for one pair.
type Analyzer interface {
	Analyze(ctx context.Context, pair models.PeakPair) (models.LOSReport, error)
}
