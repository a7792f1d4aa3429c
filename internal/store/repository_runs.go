package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

// runRepository is the SQL-backed implementation of [RunRepository].
type runRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewRunRepository constructs a [RunRepository] backed by the provided
// database connection and logger.
func NewRunRepository(db *DB, logger *logger.Logger) RunRepository {
	logger.Debug().Msg("creating run repository")
	return &runRepository{
		db:     db,
		logger: logger,
	}
}

// SaveRun records the run header and its per-pair results in one
// transaction.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrRunAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *runRepository) SaveRun(ctx context.Context, run models.AnalysisRun, reports []models.LOSReport) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.db.Builder().
		Insert("analysis_runs").
		Columns("run_id", "started_at", "finished_at", "total_pairs", "clear_count", "blocked_count").
		Values(run.RunID, run.StartedAt, run.FinishedAt, run.TotalPairs, run.ClearCount, run.BlockedCount).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("run_id", run.RunID).Msg("error inserting analysis run")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrRunAlreadyExists
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	for _, report := range reports {
		query, args, err = r.db.Builder().
			Insert("los_results").
			Columns("run_id", "peak1_name", "peak2_name", "distance_km", "horizon_km", "curvature_drop_m", "clear", "profile_path").
			Values(run.RunID, report.Pair.First.Name, report.Pair.Second.Name,
				report.Pair.DistanceKM, report.HorizonKM, report.CurvatureDropM,
				report.Clear, report.ProfilePath).
			ToSql()
		if err != nil {
			return fmt.Errorf("build result insert: %w", err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert result for run %q: %w", run.RunID, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns recorded runs, newest first.
func (r *runRepository) ListRuns(ctx context.Context) ([]models.AnalysisRun, error) {
	query, args, err := r.db.Builder().
		Select("run_id", "started_at", "finished_at", "total_pairs", "clear_count", "blocked_count").
		From("analysis_runs").
		OrderBy("started_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build runs select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		if err = rows.Scan(&run.RunID, &run.StartedAt, &run.FinishedAt,
			&run.TotalPairs, &run.ClearCount, &run.BlockedCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun returns a single run by its ID.
func (r *runRepository) GetRun(ctx context.Context, runID string) (models.AnalysisRun, error) {
	query, args, err := r.db.Builder().
		Select("run_id", "started_at", "finished_at", "total_pairs", "clear_count", "blocked_count").
		From("analysis_runs").
		Where(squirrel.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return models.AnalysisRun{}, fmt.Errorf("build run select: %w", err)
	}

	var run models.AnalysisRun
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&run.RunID, &run.StartedAt,
		&run.FinishedAt, &run.TotalPairs, &run.ClearCount, &run.BlockedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AnalysisRun{}, ErrRunNotFound
	}
	if err != nil {
		return models.AnalysisRun{}, fmt.Errorf("query run %q: %w", runID, err)
	}

	return run, nil
}

func (r *runRepository) DeleteAllRuns(ctx context.Context) error {
	for _, table := range []string{"los_results", "analysis_runs"} {
		query, args, err := r.db.Builder().Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("build %s delete: %w", table, err)
		}

		if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	return nil
}
