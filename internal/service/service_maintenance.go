package service

import (
	"context"
	"fmt"
	"os"

	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/store"
)

// maintenanceService is the concrete implementation of [MaintenanceService].
type maintenanceService struct {
	peaks      store.PeakRepository
	elevations store.ElevationRepository
	runs       store.RunRepository
	profileDir string

	logger *logger.Logger
}

// NewMaintenanceService constructs a [MaintenanceService] over all caches.
func NewMaintenanceService(storages *store.Storages, cfg config.Files, logger *logger.Logger) MaintenanceService {
	return &maintenanceService{
		peaks:      storages.Peaks,
		elevations: storages.Elevations,
		runs:       storages.Runs,
		profileDir: cfg.ProfileDir,
		logger:     logger,
	}
}

// Clean implements [MaintenanceService]. Runs go first so los_results never
// reference peaks that were already removed.
func (s *maintenanceService) Clean(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := s.runs.DeleteAllRuns(ctx); err != nil {
		return fmt.Errorf("clean runs: %w", err)
	}
	if err := s.elevations.DeleteAllElevations(ctx); err != nil {
		return fmt.Errorf("clean elevation grid: %w", err)
	}
	if err := s.peaks.DeleteAllPeaks(ctx); err != nil {
		return fmt.Errorf("clean peak catalogue: %w", err)
	}
	if err := os.RemoveAll(s.profileDir); err != nil {
		return fmt.Errorf("clean profile directory: %w", err)
	}

	log.Info().Str("profile_dir", s.profileDir).Msg("caches cleaned")

	return nil
}
