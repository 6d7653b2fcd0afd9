package store

import "time"

// RunStatus represents the lifecycle of a pipeline run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is one invocation of the extraction or matching pipeline.
type Run struct {
	ID                string
	Status            RunStatus
	StartedAt         time.Time
	FinishedAt        *time.Time
	ChaptersProcessed int
	SectionsFound     int
	SectionsSkipped   int
	RecordsTotal      int
	RecordsMatched    int
	ErrorMessage      string
}

// Totals carries the counters recorded when a run finishes.
type Totals struct {
	ChaptersProcessed int
	SectionsFound     int
	SectionsSkipped   int
	RecordsTotal      int
	RecordsMatched    int
}

// SectionRow is one section-index entry produced by segmentation.
// Matchable is false for sections whose body fell below the configured
// minimum length; they stay in the index but never enter the match pool.
type SectionRow struct {
	ID        int64
	RunID     string
	Chapter   string
	Title     string
	StartPage int
	Length    int
	Preview   string
	Matchable bool
}

// MatchSummary is the per-record outcome of the matching stage.
type MatchSummary struct {
	RunID       string
	RecordID    string
	RecordName  string
	Category    string
	MatchCount  int
	BestScore   float64
	BestTitle   string
	BestChapter string
}
