package los

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

// funcSource adapts a plain function to the ElevationSource interface.
type funcSource func(lat, lon float64) (float64, error)

func (f funcSource) ElevationAt(_ context.Context, lat, lon float64) (float64, error) {
	return f(lat, lon)
}

func flatSource(elevation float64) ElevationSource {
	return funcSource(func(lat, lon float64) (float64, error) {
		return elevation, nil
	})
}

func testPair() models.PeakPair {
	return models.PeakPair{
		First:  models.Peak{Name: "Pikes Peak", Lat: 38.8409, Lon: -105.0423, ElevationM: 4302},
		Second: models.Peak{Name: "Mount Elbert", Lat: 39.1178, Lon: -106.4454, ElevationM: 4401},
	}
}

func TestCalculator_Analyze_FlatTerrainIsClear(t *testing.T) {
	calc := NewCalculator(flatSource(0), logger.Nop())

	report, err := calc.Analyze(context.Background(), testPair())
	require.NoError(t, err)

	assert.True(t, report.Clear)
	assert.Len(t, report.TerrainM, SampleCount)
	assert.Len(t, report.SightM, SampleCount)
	assert.Len(t, report.SampleKM, SampleCount)
}

func TestCalculator_Analyze_WallBlocks(t *testing.T) {
	// Terrain far above both summits everywhere except the pinned
	// endpoints must block the pair.
	calc := NewCalculator(flatSource(9000), logger.Nop())

	report, err := calc.Analyze(context.Background(), testPair())
	require.NoError(t, err)

	assert.False(t, report.Clear)
}

func TestCalculator_Analyze_EndpointsPinnedToSummits(t *testing.T) {
	calc := NewCalculator(flatSource(123), logger.Nop())
	pair := testPair()

	report, err := calc.Analyze(context.Background(), pair)
	require.NoError(t, err)

	assert.Equal(t, pair.First.ElevationM, report.TerrainM[0])
	assert.Equal(t, pair.Second.ElevationM, report.TerrainM[len(report.TerrainM)-1])
	assert.Equal(t, 123.0, report.TerrainM[1])
}

func TestCalculator_Analyze_ComputesDistanceAndHorizon(t *testing.T) {
	calc := NewCalculator(flatSource(0), logger.Nop())
	pair := testPair()

	report, err := calc.Analyze(context.Background(), pair)
	require.NoError(t, err)

	// Pikes Peak to Mount Elbert is roughly 125 km.
	assert.Greater(t, report.Pair.DistanceKM, 120.0)
	assert.Less(t, report.Pair.DistanceKM, 130.0)

	wantHorizon := horizonCoefficient * (math.Sqrt(pair.First.ElevationM) + math.Sqrt(pair.Second.ElevationM))
	assert.InDelta(t, wantHorizon, report.HorizonKM, 1e-9)
}

func TestCalculator_Analyze_SightLineEndpoints(t *testing.T) {
	// The Earth bulge vanishes at both ends, so the sight line starts and
	// ends exactly at the summit elevations.
	calc := NewCalculator(flatSource(0), logger.Nop())
	pair := testPair()

	report, err := calc.Analyze(context.Background(), pair)
	require.NoError(t, err)

	assert.InDelta(t, pair.First.ElevationM, report.SightM[0], 1e-6)
	assert.InDelta(t, pair.Second.ElevationM, report.SightM[len(report.SightM)-1], 1e-6)

	// In between, the sight line sags below the straight chord.
	mid := len(report.SightM) / 2
	straightMid := pair.First.ElevationM + (pair.Second.ElevationM-pair.First.ElevationM)/2
	assert.Less(t, report.SightM[mid], straightMid)
}

func TestCurvatureDropM_KnownValue(t *testing.T) {
	// For a 100 km path: (50 000 m)² / (2 · (4/3 · 6371 km)) ≈ 147.2 m.
	assert.InDelta(t, 147.15, curvatureDropM(100), 0.1)
}

func TestCalculator_Analyze_IdenticalPeaks(t *testing.T) {
	calc := NewCalculator(flatSource(0), logger.Nop())
	peak := models.Peak{Name: "Lone", Lat: 40, Lon: -105, ElevationM: 4000}

	_, err := calc.Analyze(context.Background(), models.PeakPair{First: peak, Second: peak})
	assert.ErrorIs(t, err, ErrIdenticalPeaks)
}

func TestCalculator_Analyze_SourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("cache unavailable")
	calc := NewCalculator(funcSource(func(lat, lon float64) (float64, error) {
		return 0, wantErr
	}), logger.Nop())

	_, err := calc.Analyze(context.Background(), testPair())
	assert.ErrorIs(t, err, wantErr)
}

func TestLOSReport_Statistics_Verdicts(t *testing.T) {
	calc := NewCalculator(flatSource(0), logger.Nop())

	report, err := calc.Analyze(context.Background(), testPair())
	require.NoError(t, err)

	stats := report.Statistics()
	assert.Contains(t, stats, "Peak 1: Pikes Peak")
	assert.Contains(t, stats, "Peak 2: Mount Elbert")
	assert.Contains(t, stats, "Great-circle distance:")
	assert.Contains(t, stats, "Theoretical LOS limit:")
	assert.Contains(t, stats, "CLEAR")

	blocked := report
	blocked.Clear = false
	assert.Contains(t, blocked.Statistics(), "BLOCKED")
}
