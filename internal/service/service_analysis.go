package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/store"
	"github.com/summitlab/peaksight/internal/workers"
	"github.com/summitlab/peaksight/models"
)

// analysisService is the concrete implementation of [AnalysisService]. It
// drives the full pipeline: candidate pairs in, persisted run and rendered
// profiles out.
type analysisService struct {
	pairs    PairService
	peaks    PeakService
	runs     store.RunRepository
	analyzer Analyzer
	renderer ProfileRenderer
	pool     *workers.Pool
	statsDir string

	logger *logger.Logger
}

// NewAnalysisService constructs an [AnalysisService] writing statistics.txt
// under statsDir.
func NewAnalysisService(pairs PairService, peaks PeakService, runs store.RunRepository,
	analyzer Analyzer, renderer ProfileRenderer, pool *workers.Pool, statsDir string,
	logger *logger.Logger) AnalysisService {
	return &analysisService{
		pairs:    pairs,
		peaks:    peaks,
		runs:     runs,
		analyzer: analyzer,
		renderer: renderer,
		pool:     pool,
		statsDir: statsDir,
		logger:   logger,
	}
}

// Run implements [AnalysisService]. Pairs are analyzed concurrently; the
// reports slice keeps the pair order regardless of completion order. A
// failed profile render degrades to an empty ProfilePath instead of
// failing the run.
func (s *analysisService) Run(ctx context.Context) (models.AnalysisRun, []models.LOSReport, error) {
	log := logger.FromContext(ctx)
	started := time.Now().UTC()

	pairs, err := s.pairs.FindPairs(ctx)
	if err != nil {
		return models.AnalysisRun{}, nil, err
	}
	if len(pairs) == 0 {
		return models.AnalysisRun{}, nil, ErrNoPairsFound
	}

	reports := make([]models.LOSReport, len(pairs))

	tasks := make([]workers.Task, len(pairs))
	for i, pair := range pairs {
		tasks[i] = func(ctx context.Context) error {
			report, err := s.analyzePair(ctx, pair)
			if err != nil {
				return fmt.Errorf("analyze %s / %s: %w", pair.First.Name, pair.Second.Name, err)
			}
			reports[i] = report
			return nil
		}
	}

	if err = s.pool.Run(ctx, tasks); err != nil {
		return models.AnalysisRun{}, nil, fmt.Errorf("analysis batch: %w", err)
	}

	run := models.AnalysisRun{
		RunID:      uuid.NewString(),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		TotalPairs: len(reports),
	}
	for _, report := range reports {
		if report.Clear {
			run.ClearCount++
		} else {
			run.BlockedCount++
		}
	}

	if err = s.runs.SaveRun(ctx, run, reports); err != nil {
		return models.AnalysisRun{}, nil, fmt.Errorf("record run: %w", err)
	}

	if err = s.writeStatistics(reports); err != nil {
		log.Warn().Err(err).Msg("statistics file not written")
	}

	log.Info().
		Str("run_id", run.RunID).
		Int("total", run.TotalPairs).
		Int("clear", run.ClearCount).
		Int("blocked", run.BlockedCount).
		Msg("analysis run finished")

	return run, reports, nil
}

// AnalyzePair implements [AnalysisService].
func (s *analysisService) AnalyzePair(ctx context.Context, firstName, secondName string) (models.LOSReport, error) {
	peaks, err := s.peaks.List(ctx)
	if err != nil {
		return models.LOSReport{}, fmt.Errorf("load peak catalogue: %w", err)
	}

	first, err := findPeak(peaks, firstName)
	if err != nil {
		return models.LOSReport{}, err
	}
	second, err := findPeak(peaks, secondName)
	if err != nil {
		return models.LOSReport{}, err
	}

	return s.analyzePair(ctx, models.PeakPair{First: first, Second: second})
}

// ListRuns implements [AnalysisService].
func (s *analysisService) ListRuns(ctx context.Context) ([]models.AnalysisRun, error) {
	return s.runs.ListRuns(ctx)
}

// GetRun implements [AnalysisService].
func (s *analysisService) GetRun(ctx context.Context, runID string) (models.AnalysisRun, error) {
	return s.runs.GetRun(ctx, runID)
}

func (s *analysisService) analyzePair(ctx context.Context, pair models.PeakPair) (models.LOSReport, error) {
	report, err := s.analyzer.Analyze(ctx, pair)
	if err != nil {
		return models.LOSReport{}, err
	}

	// Profiles are rendered for clear pairs only; a blocked profile has no
	// audience.
	if report.Clear {
		path, err := s.renderer.Render(report)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("peak1", pair.First.Name).
				Str("peak2", pair.Second.Name).
				Msg("profile render failed")
		} else {
			report.ProfilePath = path
		}
	}

	return report, nil
}

// writeStatistics dumps every report block into statistics.txt next to the
// rendered profiles.
func (s *analysisService) writeStatistics(reports []models.LOSReport) error {
	if err := os.MkdirAll(s.statsDir, 0o755); err != nil {
		return fmt.Errorf("create statistics directory: %w", err)
	}

	blocks := make([]string, len(reports))
	for i, report := range reports {
		blocks[i] = report.Statistics()
	}

	path := filepath.Join(s.statsDir, "statistics.txt")
	if err := os.WriteFile(path, []byte(strings.Join(blocks, "\n\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("write statistics file: %w", err)
	}

	return nil
}

func findPeak(peaks []models.Peak, name string) (models.Peak, error) {
	for _, peak := range peaks {
		if strings.EqualFold(peak.Name, name) {
			return peak, nil
		}
	}

	return models.Peak{}, fmt.Errorf("%w: %q", ErrPeakNotFound, name)
}
