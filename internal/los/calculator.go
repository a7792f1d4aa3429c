// Package los implements the terrain line-of-sight analysis between two
// peaks, accounting for Earth's curvature with standard atmospheric
// refraction (k = 4/3) and using cached elevation data only — no external
// API calls happen here.
package los

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/summitlab/peaksight/internal/geo"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

const (
	// EarthRadiusKM is the mean Earth radius used for curvature math.
	EarthRadiusKM = 6371.0

	// RefractionFactor is the standard atmospheric refraction correction:
	// light bends slightly around the Earth, so the effective radius is
	// 4/3 of the geometric one.
	RefractionFactor = 4.0 / 3.0

	// SampleCount is the number of evenly spaced samples taken along the
	// path between the two peaks.
	SampleCount = 200

	// horizonCoefficient converts √elevation-in-meters to the distance of
	// the refracted radio horizon in kilometers.
	horizonCoefficient = 3.57
)

// ErrIdenticalPeaks is returned when both endpoints share the same
// coordinates; a zero-length path has no meaningful profile.
var ErrIdenticalPeaks = errors.New("peaks share the same coordinates")

// ElevationSource supplies terrain elevations for arbitrary coordinates.
// Implementations resolve against the prefetched grid; coordinates outside
// the cached area yield 0.0, not an error.
type ElevationSource interface {
	ElevationAt(ctx context.Context, lat, lon float64) (float64, error)
}

// Calculator runs line-of-sight analyses against a fixed elevation source.
type Calculator struct {
	elevations ElevationSource
	samples    int

	logger *logger.Logger
}

// NewCalculator constructs a Calculator reading terrain data from source.
func NewCalculator(source ElevationSource, log *logger.Logger) *Calculator {
	return &Calculator{
		elevations: source,
		samples:    SampleCount,
		logger:     log,
	}
}

// Analyze evaluates terrain line-of-sight between the two peaks of pair
// and returns the full report: geodesic distance, horizon limit, sampled
// terrain and sight-line profiles, midpoint curvature drop, and the
// clear/blocked verdict.
//
// The pair's stored distance is ignored and recomputed so reports stay
// consistent regardless of where the pair came from.
func (c *Calculator) Analyze(ctx context.Context, pair models.PeakPair) (models.LOSReport, error) {
	p1, p2 := pair.First, pair.Second

	distanceKM := geo.DistanceKM(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
	if distanceKM == 0 {
		return models.LOSReport{}, ErrIdenticalPeaks
	}
	pair.DistanceKM = distanceKM

	terrain, err := c.sampleTerrain(ctx, p1, p2)
	if err != nil {
		return models.LOSReport{}, fmt.Errorf("sampling terrain: %w", err)
	}

	// Endpoints are pinned to the catalogued summit elevations: the grid
	// cell average can sit well below the actual summit.
	terrain[0] = p1.ElevationM
	terrain[len(terrain)-1] = p2.ElevationM

	sampleKM, sight := c.sightLine(p1.ElevationM, p2.ElevationM, distanceKM)

	clear := true
	for i := range terrain {
		if terrain[i] > sight[i] {
			clear = false
			break
		}
	}

	report := models.LOSReport{
		Pair:           pair,
		HorizonKM:      horizonCoefficient * (math.Sqrt(p1.ElevationM) + math.Sqrt(p2.ElevationM)),
		CurvatureDropM: curvatureDropM(distanceKM),
		Clear:          clear,
		SampleKM:       sampleKM,
		TerrainM:       terrain,
		SightM:         sight,
	}

	c.logger.Debug().
		Str("peak1", p1.Name).
		Str("peak2", p2.Name).
		Float64("distance_km", distanceKM).
		Bool("clear", clear).
		Msg("line-of-sight analyzed")

	return report, nil
}

// sampleTerrain reads the terrain elevation at evenly spaced coordinates
// along the straight path in lat/lon space between the two peaks.
func (c *Calculator) sampleTerrain(ctx context.Context, p1, p2 models.Peak) ([]float64, error) {
	lats := floats.Span(make([]float64, c.samples), p1.Lat, p2.Lat)
	lons := floats.Span(make([]float64, c.samples), p1.Lon, p2.Lon)

	terrain := make([]float64, c.samples)
	for i := range terrain {
		elevation, err := c.elevations.ElevationAt(ctx, lats[i], lons[i])
		if err != nil {
			return nil, err
		}
		terrain[i] = elevation
	}

	return terrain, nil
}

// sightLine builds the curvature-corrected line between the two summit
// elevations. The straight chord is lowered at every sample by the Earth
// bulge d·(D−d)/(2·R_eff), with the refraction-corrected effective radius.
func (c *Calculator) sightLine(elev1, elev2, distanceKM float64) (sampleKM, sight []float64) {
	effectiveRadiusKM := RefractionFactor * EarthRadiusKM

	sampleKM = floats.Span(make([]float64, c.samples), 0, distanceKM)
	sight = make([]float64, c.samples)

	for i, d := range sampleKM {
		straight := elev1 + (elev2-elev1)*(d/distanceKM)
		bulgeM := -(d * 1000) * ((distanceKM - d) * 1000) / (2 * effectiveRadiusKM * 1000)
		sight[i] = straight + bulgeM
	}

	return sampleKM, sight
}

// curvatureDropM is how far the Earth's surface falls below the chord at
// the path midpoint, in meters.
func curvatureDropM(distanceKM float64) float64 {
	effectiveRadiusKM := RefractionFactor * EarthRadiusKM
	midpointM := distanceKM / 2 * 1000

	return midpointM * midpointM / (2 * effectiveRadiusKM * 1000)
}
