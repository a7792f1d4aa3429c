package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/migrations"
)

// DB wraps the cache database connection together with the
// placeholder-aware query builder for the active driver.
type DB struct {
	*sql.DB

	driver  string
	builder squirrel.StatementBuilderType
	logger  *logger.Logger
}

// NewDB opens the cache database selected by cfg.Driver and verifies the
// connection with a ping.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Migrate applies the embedded goose migrations using the dialect that
// matches the open connection.
func (db *DB) Migrate() error {
	dialect := "sqlite3"
	if db.driver == config.DriverPostgres {
		dialect = "pgx"
	}

	return migrations.Migrate(db.DB, dialect)
}

// Builder returns the squirrel statement builder configured with the
// placeholder format of the active driver ($N for postgres, ? for sqlite).
func (db *DB) Builder() squirrel.StatementBuilderType {
	return db.builder
}
