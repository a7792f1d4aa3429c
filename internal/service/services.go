package service

import (
	"github.com/summitlab/peaksight/internal/adapter"
	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/los"
	"github.com/summitlab/peaksight/internal/store"
	"github.com/summitlab/peaksight/internal/workers"
	"github.com/summitlab/peaksight/models"
)

type Services struct {
	PeakService        PeakService
	ElevationService   ElevationService
	PairService        PairService
	AnalysisService    AnalysisService
	MaintenanceService MaintenanceService
	AppInfoService     AppInfoService
}

// Dependencies carries the outbound collaborators the services are built
// on. All fields are required.
type Dependencies struct {
	Storages *store.Storages
	Peaks    adapter.PeakSource
	API      adapter.ElevationAPI
	Renderer ProfileRenderer
}

// NewServices wires every service over the shared storages, the outbound
// adapters, and the default region set.
func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	regions := models.DefaultRegions()

	peaks := NewPeakService(deps.Storages.Peaks, deps.Peaks, regions, cfg.Analysis, logger)
	elevations := NewElevationService(deps.Storages.Elevations, deps.API, regions, cfg.Analysis, logger)
	pairs := NewPairService(deps.Storages.Peaks, cfg.Analysis, logger)

	calculator := los.NewCalculator(
		NewGridElevationSource(deps.Storages.Elevations, cfg.Analysis.GridResolution), logger)
	pool := workers.NewPool(cfg.Workers.Concurrency, logger)

	return &Services{
		PeakService:        peaks,
		ElevationService:   elevations,
		PairService:        pairs,
		AnalysisService: NewAnalysisService(pairs, peaks, deps.Storages.Runs, calculator,
			deps.Renderer, pool, cfg.Storage.Files.ProfileDir, logger),
		MaintenanceService: NewMaintenanceService(deps.Storages, cfg.Storage.Files, logger),
		AppInfoService:     appInfo,
	}, nil
}
