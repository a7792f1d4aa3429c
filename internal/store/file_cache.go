package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/summitlab/peaksight/internal/geo"
	"github.com/summitlab/peaksight/models"
)

// The JSON snapshot formats match the legacy cache files byte-for-byte in
// structure: peaks_cache.json is an indented array of peaks,
// elevation_cache.json a flat object of "lat,lon" keys to meters.

// ExportPeaksFile writes the full peak catalogue to path in the
// peaks_cache.json format.
func ExportPeaksFile(ctx context.Context, repo PeakRepository, path string) error {
	peaks, err := repo.FindPeaks(ctx, 0)
	if err != nil {
		return fmt.Errorf("load peaks for export: %w", err)
	}

	data, err := json.MarshalIndent(peaks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode peaks: %w", err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write peaks snapshot: %w", err)
	}

	return nil
}

// ImportPeaksFile loads a peaks_cache.json snapshot into the catalogue.
func ImportPeaksFile(ctx context.Context, repo PeakRepository, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read peaks snapshot: %w", err)
	}

	var peaks []models.Peak
	if err = json.Unmarshal(data, &peaks); err != nil {
		return fmt.Errorf("decode peaks snapshot: %w", err)
	}

	if err = repo.SavePeaks(ctx, peaks); err != nil {
		return fmt.Errorf("store imported peaks: %w", err)
	}

	return nil
}

// ExportElevationsFile writes the full elevation grid to path in the
// elevation_cache.json format.
func ExportElevationsFile(ctx context.Context, repo ElevationRepository, path string) error {
	grid, err := repo.AllElevations(ctx)
	if err != nil {
		return fmt.Errorf("load elevations for export: %w", err)
	}

	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("encode elevations: %w", err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write elevations snapshot: %w", err)
	}

	return nil
}

// ImportElevationsFile loads an elevation_cache.json snapshot into the
// grid cache. Keys that do not parse as "lat,lon" pairs abort the import.
func ImportElevationsFile(ctx context.Context, repo ElevationRepository, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read elevations snapshot: %w", err)
	}

	var grid map[string]float64
	if err = json.Unmarshal(data, &grid); err != nil {
		return fmt.Errorf("decode elevations snapshot: %w", err)
	}

	coords := make([]models.Coordinate, 0, len(grid))
	elevations := make([]float64, 0, len(grid))
	for key, elevation := range grid {
		lat, lon, err := geo.ParseGridKey(key)
		if err != nil {
			return fmt.Errorf("import elevations: %w", err)
		}

		coords = append(coords, models.Coordinate{Lat: lat, Lon: lon})
		elevations = append(elevations, elevation)
	}

	if err = repo.SaveElevations(ctx, coords, elevations); err != nil {
		return fmt.Errorf("store imported elevations: %w", err)
	}

	return nil
}
