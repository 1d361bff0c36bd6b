package model

import "time"

// Row statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Pipeline stages, recorded on failed rows
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// RowOutcome is the per-ID result of a run
type RowOutcome struct {
	UserID  int    `json:"user_id"`
	Status  string `json:"status"` // success | failure
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

// RunSummary represents the overall outcome of a single pipeline run
type RunSummary struct {
	RunID      string        `json:"run_id"`
	Total      int           `json:"total"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
	ReportPath string        `json:"report_path"`
	Rows       []RowOutcome  `json:"rows"`
}

// Add records one row outcome on the summary
func (s *RunSummary) Add(row RowOutcome) {
	s.Rows = append(s.Rows, row)
	s.Total++
	if row.Status == StatusSuccess {
		s.Succeeded++
	} else {
		s.Failed++
	}
}
