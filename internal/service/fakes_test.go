package service

import (
	"context"
	"fmt"

	"github.com/summitlab/peaksight/internal/store"
	"github.com/summitlab/peaksight/models"
)

// Hand-written fakes shared by the service tests.

type fakePeakRepo struct {
	peaks    []models.Peak
	countErr error
	findErr  error
	saveErr  error

	savedBatches [][]models.Peak
	deleted      bool
}

func (f *fakePeakRepo) SavePeaks(_ context.Context, peaks []models.Peak) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedBatches = append(f.savedBatches, peaks)
	f.peaks = append(f.peaks, peaks...)
	return nil
}

func (f *fakePeakRepo) FindPeaks(_ context.Context, minElevationM float64) ([]models.Peak, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Peak
	for _, p := range f.peaks {
		if minElevationM == 0 || p.ElevationM >= minElevationM {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePeakRepo) CountPeaks(context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.peaks)), nil
}

func (f *fakePeakRepo) DeleteAllPeaks(context.Context) error {
	f.deleted = true
	f.peaks = nil
	return nil
}

type fakeElevationRepo struct {
	grid    map[string]float64
	getErr  error
	saveErr error

	deleted bool
}

func (f *fakeElevationRepo) SaveElevations(_ context.Context, coords []models.Coordinate, elevations []float64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.grid == nil {
		f.grid = make(map[string]float64)
	}
	for i, coord := range coords {
		f.grid[fmt.Sprintf("%.6f,%.6f", coord.Lat, coord.Lon)] = elevations[i]
	}
	return nil
}

func (f *fakeElevationRepo) GetElevation(_ context.Context, key string) (float64, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	elevation, ok := f.grid[key]
	if !ok {
		return 0, store.ErrElevationNotFound
	}
	return elevation, nil
}

func (f *fakeElevationRepo) AllElevations(context.Context) (map[string]float64, error) {
	return f.grid, nil
}

func (f *fakeElevationRepo) CountElevations(context.Context) (int64, error) {
	return int64(len(f.grid)), nil
}

func (f *fakeElevationRepo) DeleteAllElevations(context.Context) error {
	f.deleted = true
	f.grid = nil
	return nil
}

type fakeRunRepo struct {
	saveErr error

	savedRun     models.AnalysisRun
	savedReports []models.LOSReport
	runs         []models.AnalysisRun
	deleted      bool
}

func (f *fakeRunRepo) SaveRun(_ context.Context, run models.AnalysisRun, reports []models.LOSReport) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedRun = run
	f.savedReports = reports
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) ListRuns(context.Context) ([]models.AnalysisRun, error) {
	return f.runs, nil
}

func (f *fakeRunRepo) GetRun(_ context.Context, runID string) (models.AnalysisRun, error) {
	for _, run := range f.runs {
		if run.RunID == runID {
			return run, nil
		}
	}
	return models.AnalysisRun{}, store.ErrRunNotFound
}

func (f *fakeRunRepo) DeleteAllRuns(context.Context) error {
	f.deleted = true
	f.runs = nil
	return nil
}

type fakePeakSource struct {
	peaksByRegion map[string][]models.Peak
	errByRegion   map[string]error

	gotMinElevation float64
	calls           []string
}

func (f *fakePeakSource) FetchPeaks(_ context.Context, region models.Region, minElevationM float64) ([]models.Peak, error) {
	f.gotMinElevation = minElevationM
	f.calls = append(f.calls, region.Name)
	if err := f.errByRegion[region.Name]; err != nil {
		return nil, err
	}
	return f.peaksByRegion[region.Name], nil
}

type fakeElevationAPI struct {
	elevation float64
	err       error

	gotCoords []models.Coordinate
}

func (f *fakeElevationAPI) FetchElevations(_ context.Context, coords []models.Coordinate) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotCoords = coords
	elevations := make([]float64, len(coords))
	for i := range elevations {
		elevations[i] = f.elevation
	}
	return elevations, nil
}

type fakeAnalyzer struct {
	clearByPair map[string]bool
	err         error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, pair models.PeakPair) (models.LOSReport, error) {
	if f.err != nil {
		return models.LOSReport{}, f.err
	}
	return models.LOSReport{
		Pair:  pair,
		Clear: f.clearByPair[pair.First.Name+"/"+pair.Second.Name],
	}, nil
}

type fakeRenderer struct {
	err error

	rendered []models.LOSReport
}

func (f *fakeRenderer) Render(report models.LOSReport) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.rendered = append(f.rendered, report)
	return "profiles/" + report.Pair.First.Name + ".png", nil
}

type fakePairService struct {
	pairs []models.PeakPair
	err   error
}

func (f *fakePairService) FindPairs(context.Context) ([]models.PeakPair, error) {
	return f.pairs, f.err
}

type fakePeakService struct {
	peaks []models.Peak
	err   error
}

func (f *fakePeakService) Prefetch(context.Context, bool) (int64, error) {
	return int64(len(f.peaks)), nil
}

func (f *fakePeakService) List(context.Context) ([]models.Peak, error) {
	return f.peaks, f.err
}
