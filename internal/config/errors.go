package config

import "errors"

var (
	ErrUnknownDriver       = errors.New("unknown cache database driver")
	ErrEmptyDSN            = errors.New("cache database DSN is empty")
	ErrNegativeElevation   = errors.New("minimum elevation must not be negative")
	ErrInvalidDistanceBand = errors.New("distance band must satisfy 0 <= min <= max, max > 0")
	ErrInvalidResolution   = errors.New("grid resolution must be positive")
	ErrInvalidBatchSize    = errors.New("batch size must be at least 1")
	ErrInvalidConcurrency  = errors.New("worker concurrency must be at least 1")
)
