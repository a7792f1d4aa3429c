// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNoPeaksFetched is returned by the peak prefetch when every
	// configured region came back empty.
	ErrNoPeaksFetched = errors.New("no peaks fetched from any region")

	// ErrNoPairsFound is returned by the analysis run when the catalogue
	// yields no pair inside the configured distance band.
	ErrNoPairsFound = errors.New("no peak pairs inside the distance band")

	// ErrPeakNotFound is returned when a peak addressed by name is not in
	// the catalogue.
	ErrPeakNotFound = errors.New("peak not found in catalogue")

	// ErrVersionIsNotSpecified is returned when the application version is
	// missing from the configuration.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
