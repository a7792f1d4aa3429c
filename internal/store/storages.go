package store

import (
	"context"
	"fmt"

	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/logger"
)

// Storages bundles every repository over the shared cache database.
type Storages struct {
	Peaks      PeakRepository
	Elevations ElevationRepository
	Runs       RunRepository

	db *DB
}

// NewStorages opens the configured cache database, applies migrations, and
// wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	return &Storages{
		Peaks:      NewPeakRepository(db, log),
		Elevations: NewElevationRepository(db, log),
		Runs:       NewRunRepository(db, log),
		db:         db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
