package adapter

import "errors"

var (
	// ErrUpstreamStatus marks a non-200 response from an upstream API.
	ErrUpstreamStatus = errors.New("upstream returned non-200 status")

	// ErrShortResponse marks an elevation response whose result count does
	// not match the submitted coordinate count.
	ErrShortResponse = errors.New("upstream returned short response")
)
