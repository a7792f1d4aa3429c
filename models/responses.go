package models

// PeaksResponse lists catalogued peaks matching an API query.
type PeaksResponse struct {
	// Peaks is the matching subset of the catalogue.
	Peaks []Peak `json:"peaks"`

	// Length is the total number of entries in Peaks.
	// Provided for convenience so the client can pre-allocate
	// or validate the response without iterating the slice.
	Length int `json:"length"`
}

// PairsResponse lists peak pairs inside the requested distance band.
type PairsResponse struct {
	Pairs  []PeakPair `json:"pairs"`
	Length int        `json:"length"`
}

// LOSRequest names the two catalogued peaks to analyze.
type LOSRequest struct {
	Peak1 string `json:"peak1"`
	Peak2 string `json:"peak2"`
}

// LOSResponse carries the analysis verdict and the formatted report for a
// single pair.
type LOSResponse struct {
	Report     LOSReport `json:"report"`
	Statistics string    `json:"statistics"`
}

// RunsResponse lists recorded analysis runs, newest first.
type RunsResponse struct {
	Runs   []AnalysisRun `json:"runs"`
	Length int           `json:"length"`
}

// ErrorResponse is the uniform JSON error body returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
