package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

// peakRepository is the SQL-backed implementation of [PeakRepository].
// It works against either backend because all statements are built through
// the connection's placeholder-aware squirrel builder.
type peakRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPeakRepository constructs a [PeakRepository] backed by the provided
// database connection and logger.
func NewPeakRepository(db *DB, logger *logger.Logger) PeakRepository {
	logger.Debug().Msg("creating peak repository")
	return &peakRepository{
		db:     db,
		logger: logger,
	}
}

// SavePeaks inserts the batch inside a single transaction. Conflicting
// rows (same name and coordinates) are left untouched, which makes repeat
// prefetches idempotent.
func (r *peakRepository) SavePeaks(ctx context.Context, peaks []models.Peak) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin peaks transaction: %w", err)
	}
	defer tx.Rollback()

	for _, peak := range peaks {
		query, args, err := r.db.Builder().
			Insert("peaks").
			Columns("name", "lat", "lon", "elevation_m").
			Values(peak.Name, peak.Lat, peak.Lon, peak.ElevationM).
			Suffix("ON CONFLICT (name, lat, lon) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build peak insert: %w", err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("peak", peak.Name).Msg("error inserting peak")
			return fmt.Errorf("insert peak %q: %w", peak.Name, err)
		}
	}

	return tx.Commit()
}

// FindPeaks returns the catalogue ordered by name, optionally filtered by
// a minimum elevation.
func (r *peakRepository) FindPeaks(ctx context.Context, minElevationM float64) ([]models.Peak, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select("name", "lat", "lon", "elevation_m").
		From("peaks").
		OrderBy("name")

	if minElevationM > 0 {
		builder = builder.Where(squirrel.GtOrEq{"elevation_m": minElevationM})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build peaks select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("error querying peaks")
		return nil, fmt.Errorf("query peaks: %w", err)
	}
	defer rows.Close()

	var peaks []models.Peak
	for rows.Next() {
		var peak models.Peak
		if err = rows.Scan(&peak.Name, &peak.Lat, &peak.Lon, &peak.ElevationM); err != nil {
			return nil, fmt.Errorf("scan peak: %w", err)
		}
		peaks = append(peaks, peak)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate peaks: %w", err)
	}

	return peaks, nil
}

func (r *peakRepository) CountPeaks(ctx context.Context) (int64, error) {
	query, args, err := r.db.Builder().
		Select("COUNT(*)").
		From("peaks").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build peaks count: %w", err)
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count peaks: %w", err)
	}

	return count, nil
}

func (r *peakRepository) DeleteAllPeaks(ctx context.Context) error {
	query, args, err := r.db.Builder().Delete("peaks").ToSql()
	if err != nil {
		return fmt.Errorf("build peaks delete: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete peaks: %w", err)
	}

	return nil
}
