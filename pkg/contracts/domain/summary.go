package domain

import "time"

// SkippedFile records one raw file excluded from an ingestion run and why.
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// RunSummary reports the outcome of one ingestion run: which files were
// accepted or skipped and how many days each dataset gained. Every skip is
// surfaced here as well as in the log; no error is silently swallowed.
type RunSummary struct {
	RunID            string        `json:"run_id"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	FilesDiscovered  int           `json:"files_discovered"`
	FilesAccepted    int           `json:"files_accepted"`
	FilesSkipped     []SkippedFile `json:"files_skipped,omitempty"`
	HourlyDaysAdded  int           `json:"hourly_days_added"`
	QuarterDaysAdded int           `json:"quarter_days_added"`
	HourlyRows       int           `json:"hourly_rows"`
	QuarterRows      int           `json:"quarter_rows"`
}

// Skip appends a skipped file entry.
func (s *RunSummary) Skip(name, reason string) {
	s.FilesSkipped = append(s.FilesSkipped, SkippedFile{Name: name, Reason: reason})
}
