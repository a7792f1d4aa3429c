package config

import (
	"errors"
	"fmt"
)

// Supported cache database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// validate checks the merged configuration for internally inconsistent or
// unusable values. All violations are reported at once via errors.Join.
func (c *StructuredConfig) validate() error {
	var errs []error

	switch c.Storage.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.DB.Driver))
	}

	if c.Storage.DB.DSN == "" {
		errs = append(errs, ErrEmptyDSN)
	}

	if c.Analysis.MinElevationFeet < 0 {
		errs = append(errs, ErrNegativeElevation)
	}

	if c.Analysis.MinDistanceKM < 0 || c.Analysis.MaxDistanceKM <= 0 {
		errs = append(errs, ErrInvalidDistanceBand)
	} else if c.Analysis.MinDistanceKM > c.Analysis.MaxDistanceKM {
		errs = append(errs, ErrInvalidDistanceBand)
	}

	if c.Analysis.GridResolution <= 0 {
		errs = append(errs, ErrInvalidResolution)
	}

	if c.Fetch.BatchSize < 1 {
		errs = append(errs, ErrInvalidBatchSize)
	}

	if c.Workers.Concurrency < 1 {
		errs = append(errs, ErrInvalidConcurrency)
	}

	return errors.Join(errs...)
}
