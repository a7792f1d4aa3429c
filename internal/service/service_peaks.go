package service

import (
	"context"
	"fmt"

	"github.com/summitlab/peaksight/internal/adapter"
	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/store"
	"github.com/summitlab/peaksight/models"
)

// peakService is the concrete implementation of [PeakService]. It owns the
// peak catalogue: fetching from the upstream source and reading back the
// filtered list.
type peakService struct {
	peaks   store.PeakRepository
	source  adapter.PeakSource
	regions []models.Region
	cfg     config.Analysis

	logger *logger.Logger
}

// NewPeakService constructs a [PeakService] over the given repository and
// upstream source, covering the provided regions.
func NewPeakService(peaks store.PeakRepository, source adapter.PeakSource,
	regions []models.Region, cfg config.Analysis, logger *logger.Logger) PeakService {
	return &peakService{
		peaks:   peaks,
		source:  source,
		regions: regions,
		cfg:     cfg,
		logger:  logger,
	}
}

// Prefetch implements [PeakService]. Regions that fail upstream are logged
// and skipped so a single flaky mirror does not abort the whole catalogue;
// only an entirely empty result is an error.
func (s *peakService) Prefetch(ctx context.Context, force bool) (int64, error) {
	log := logger.FromContext(ctx)

	if !force {
		count, err := s.peaks.CountPeaks(ctx)
		if err != nil {
			return 0, fmt.Errorf("check peak catalogue: %w", err)
		}
		if count > 0 {
			log.Info().Int64("peaks", count).Msg("peak catalogue already populated, skipping fetch")
			return count, nil
		}
	}

	minElevationM := models.FeetToMeters(s.cfg.MinElevationFeet)

	var fetched []models.Peak
	for _, region := range s.regions {
		peaks, err := s.source.FetchPeaks(ctx, region, minElevationM)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			log.Warn().Err(err).Str("region", region.Name).Msg("region fetch failed, skipping")
			continue
		}

		log.Info().Str("region", region.Name).Int("peaks", len(peaks)).Msg("region fetched")
		fetched = append(fetched, peaks...)
	}

	if len(fetched) == 0 {
		return 0, ErrNoPeaksFetched
	}

	if err := s.peaks.SavePeaks(ctx, fetched); err != nil {
		return 0, fmt.Errorf("store fetched peaks: %w", err)
	}

	return s.peaks.CountPeaks(ctx)
}

// List implements [PeakService].
func (s *peakService) List(ctx context.Context) ([]models.Peak, error) {
	return s.peaks.FindPeaks(ctx, models.FeetToMeters(s.cfg.MinElevationFeet))
}
