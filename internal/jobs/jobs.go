package jobs

import (
	"time"
)

// Job is one lyrics-extraction request: a recognizer output document on
// disk waiting to be formatted, persisted and announced.
type Job struct {
	ID          int64     `json:"id"`
	Track       string    `json:"track"`
	SourcePath  string    `json:"source_path"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
	Language    string    `json:"language,omitempty"`
	Error       string    `json:"error,omitempty"`
}

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusFailed     = "failed"
)

// BySubmitted orders jobs oldest first.
type BySubmitted []Job

func (a BySubmitted) Len() int           { return len(a) }
func (a BySubmitted) Less(i, j int) bool { return a[i].SubmittedAt.Before(a[j].SubmittedAt) }
func (a BySubmitted) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }

// CountByStatus tallies a job list per status.
func CountByStatus(list []Job) map[string]int {
	counts := make(map[string]int)
	for _, job := range list {
		counts[job.Status]++
	}
	return counts
}
