package store

import "errors"

var (
	// ErrUnknownDriver marks an unsupported cache database driver.
	ErrUnknownDriver = errors.New("unknown cache database driver")

	// ErrElevationNotFound is returned when a grid key has no cached
	// elevation.
	ErrElevationNotFound = errors.New("elevation not cached for grid key")

	// ErrRunNotFound is returned when the requested analysis run does not
	// exist.
	ErrRunNotFound = errors.New("analysis run not found")

	// ErrRunAlreadyExists is returned when a run ID collides with a
	// recorded run.
	ErrRunAlreadyExists = errors.New("analysis run already recorded")

	// ErrLengthMismatch is returned when parallel slices disagree in
	// length.
	ErrLengthMismatch = errors.New("coordinate and elevation counts differ")
)
