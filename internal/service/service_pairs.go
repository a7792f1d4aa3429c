package service

import (
	"context"
	"fmt"

	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/geo"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/store"
	"github.com/summitlab/peaksight/models"
)

// pairService is the concrete implementation of [PairService].
type pairService struct {
	peaks store.PeakRepository
	cfg   config.Analysis

	logger *logger.Logger
}

// NewPairService constructs a [PairService] over the peak catalogue.
func NewPairService(peaks store.PeakRepository, cfg config.Analysis, logger *logger.Logger) PairService {
	return &pairService{
		peaks:  peaks,
		cfg:    cfg,
		logger: logger,
	}
}

// FindPairs implements [PairService]. Every unordered pair of catalogued
// peaks is tested once; both band edges are inclusive.
func (s *pairService) FindPairs(ctx context.Context) ([]models.PeakPair, error) {
	log := logger.FromContext(ctx)

	peaks, err := s.peaks.FindPeaks(ctx, models.FeetToMeters(s.cfg.MinElevationFeet))
	if err != nil {
		return nil, fmt.Errorf("load peak catalogue: %w", err)
	}

	var pairs []models.PeakPair
	for i := range peaks {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		for j := i + 1; j < len(peaks); j++ {
			distanceKM := geo.DistanceKM(peaks[i].Lat, peaks[i].Lon, peaks[j].Lat, peaks[j].Lon)
			if distanceKM < s.cfg.MinDistanceKM || distanceKM > s.cfg.MaxDistanceKM {
				continue
			}

			pairs = append(pairs, models.PeakPair{
				First:      peaks[i],
				Second:     peaks[j],
				DistanceKM: distanceKM,
			})
		}
	}

	log.Info().
		Int("peaks", len(peaks)).
		Int("pairs", len(pairs)).
		Float64("min_km", s.cfg.MinDistanceKM).
		Float64("max_km", s.cfg.MaxDistanceKM).
		Msg("candidate pairs selected")

	return pairs, nil
}
