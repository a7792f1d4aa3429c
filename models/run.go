package models

import "time"

// AnalysisRun is a persisted record of one full analysis pipeline
// execution: every pair in the distance band evaluated for line-of-sight.
type AnalysisRun struct {
	// RunID is the unique identifier of the run (UUID).
	RunID string `json:"run_id"`

	// StartedAt and FinishedAt bound the pipeline execution.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// TotalPairs is the number of pairs analyzed in this run.
	TotalPairs int `json:"total_pairs"`

	// ClearCount and BlockedCount partition TotalPairs by verdict.
	ClearCount   int `json:"clear_count"`
	BlockedCount int `json:"blocked_count"`
}

// TableName returns the name of the database table
// associated with the AnalysisRun model.
func (r AnalysisRun) TableName() string {
	return "analysis_runs"
}
