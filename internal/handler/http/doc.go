// Package http exposes the analysis pipeline over a JSON HTTP API: the
// peak catalogue, candidate pairs, on-demand line-of-sight checks, recorded
// runs, and the rendered profile images.
package http
