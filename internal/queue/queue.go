package queue

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/minhle/karascribe/internal/jobs"
	"github.com/minhle/karascribe/internal/redis"
)

// Manager tracks extraction jobs with thread-safety, mirroring the
// whole list to redis on every mutation so a restarted worker picks up
// where it left off.
type Manager struct {
	mu     sync.RWMutex
	list   []jobs.Job
	nextID int64
	db     *redis.Manager
}

func NewManager(db *redis.Manager) *Manager {
	return &Manager{
		list:   []jobs.Job{},
		nextID: 1,
		db:     db,
	}
}

// Init loads the persisted job list from redis and resets anything
// caught mid-flight by a previous crash back to queued.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.db.GetJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load job list: %w", err)
	}
	for i, job := range list {
		if job.Status == jobs.StatusProcessing {
			list[i].Status = jobs.StatusQueued
		}
		if job.ID >= m.nextID {
			m.nextID = job.ID + 1
		}
	}
	m.list = list
	return nil
}

// Add enqueues a new extraction job and returns its ID.
func (m *Manager) Add(ctx context.Context, track, sourcePath string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := jobs.Job{
		ID:          m.nextID,
		Track:       track,
		SourcePath:  sourcePath,
		Status:      jobs.StatusQueued,
		SubmittedAt: time.Now(),
	}
	m.nextID++
	m.list = append(m.list, job)
	if err := m.db.SetJobs(ctx, m.list); err != nil {
		return 0, fmt.Errorf("failed to persist job list: %w", err)
	}
	return job.ID, nil
}

// NextQueued returns the oldest queued job, if any.
func (m *Manager) NextQueued() (jobs.Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var queued []jobs.Job
	for _, job := range m.list {
		if job.Status == jobs.StatusQueued {
			queued = append(queued, job)
		}
	}
	if len(queued) == 0 {
		return jobs.Job{}, false
	}
	sort.Sort(jobs.BySubmitted(queued))
	return queued[0], true
}

// MarkProcessing transitions a job to processing.
func (m *Manager) MarkProcessing(ctx context.Context, jobID int64) error {
	return m.edit(ctx, jobID, func(job *jobs.Job) {
		job.Status = jobs.StatusProcessing
	})
}

// Complete transitions a job to done and records the detected language.
func (m *Manager) Complete(ctx context.Context, jobID int64, language string) error {
	return m.edit(ctx, jobID, func(job *jobs.Job) {
		job.Status = jobs.StatusDone
		job.Language = language
		job.FinishedAt = time.Now()
	})
}

// Fail transitions a job to failed with a reason.
func (m *Manager) Fail(ctx context.Context, jobID int64, reason string) error {
	return m.edit(ctx, jobID, func(job *jobs.Job) {
		job.Status = jobs.StatusFailed
		job.Error = reason
		job.FinishedAt = time.Now()
	})
}

func (m *Manager) edit(ctx context.Context, jobID int64, apply func(*jobs.Job)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.list {
		if m.list[i].ID == jobID {
			apply(&m.list[i])
			if err := m.db.SetJobs(ctx, m.list); err != nil {
				return fmt.Errorf("failed to persist job list: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("job with ID %d not found", jobID)
}

// GetAll returns a snapshot of every tracked job.
func (m *Manager) GetAll() []jobs.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make([]jobs.Job, len(m.list))
	copy(snapshot, m.list)
	return snapshot
}
