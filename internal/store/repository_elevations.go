package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/summitlab/peaksight/internal/geo"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

// elevationRepository is the SQL-backed implementation of
// [ElevationRepository]. Grid points are keyed by the canonical 6-decimal
// coordinate string so database lookups behave exactly like the JSON
// snapshot cache.
type elevationRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewElevationRepository constructs an [ElevationRepository] backed by the
// provided database connection and logger.
func NewElevationRepository(db *DB, logger *logger.Logger) ElevationRepository {
	logger.Debug().Msg("creating elevation repository")
	return &elevationRepository{
		db:     db,
		logger: logger,
	}
}

// elevationInsertChunk bounds the multi-row INSERT size: 4 bind variables
// per row, kept well under SQLite's 999-variable limit.
const elevationInsertChunk = 200

// SaveElevations stores the batch inside a single transaction, overwriting
// any previously cached value per grid key. Rows go in as chunked
// multi-row inserts; a full region grid is millions of points, so one
// round-trip per point is not an option. Coordinate and elevation slices
// must be parallel.
func (r *elevationRepository) SaveElevations(ctx context.Context, coords []models.Coordinate, elevations []float64) error {
	if len(coords) != len(elevations) {
		return fmt.Errorf("%w: %d coordinates, %d elevations", ErrLengthMismatch, len(coords), len(elevations))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin elevations transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(coords); start += elevationInsertChunk {
		end := min(start+elevationInsertChunk, len(coords))

		insert := r.db.Builder().
			Insert("elevations").
			Columns("coord_key", "lat", "lon", "elevation_m").
			Suffix("ON CONFLICT (coord_key) DO UPDATE SET elevation_m = excluded.elevation_m")
		for i := start; i < end; i++ {
			insert = insert.Values(geo.GridKey(coords[i].Lat, coords[i].Lon), coords[i].Lat, coords[i].Lon, elevations[i])
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build elevation insert: %w", err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert elevations [%d:%d]: %w", start, end, err)
		}
	}

	return tx.Commit()
}

// GetElevation resolves a single canonical grid key.
func (r *elevationRepository) GetElevation(ctx context.Context, key string) (float64, error) {
	query, args, err := r.db.Builder().
		Select("elevation_m").
		From("elevations").
		Where(squirrel.Eq{"coord_key": key}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build elevation select: %w", err)
	}

	var elevation float64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&elevation)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrElevationNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query elevation %q: %w", key, err)
	}

	return elevation, nil
}

// AllElevations loads the full grid; used by the JSON cache exporter.
func (r *elevationRepository) AllElevations(ctx context.Context) (map[string]float64, error) {
	query, args, err := r.db.Builder().
		Select("coord_key", "elevation_m").
		From("elevations").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build elevations select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query elevations: %w", err)
	}
	defer rows.Close()

	grid := make(map[string]float64)
	for rows.Next() {
		var key string
		var elevation float64
		if err = rows.Scan(&key, &elevation); err != nil {
			return nil, fmt.Errorf("scan elevation: %w", err)
		}
		grid[key] = elevation
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elevations: %w", err)
	}

	return grid, nil
}

func (r *elevationRepository) CountElevations(ctx context.Context) (int64, error) {
	query, args, err := r.db.Builder().
		Select("COUNT(*)").
		From("elevations").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build elevations count: %w", err)
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count elevations: %w", err)
	}

	return count, nil
}

func (r *elevationRepository) DeleteAllElevations(ctx context.Context) error {
	query, args, err := r.db.Builder().Delete("elevations").ToSql()
	if err != nil {
		return fmt.Errorf("build elevations delete: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete elevations: %w", err)
	}

	return nil
}
