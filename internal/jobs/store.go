package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"token-analysis-backend/internal/schema"
)

// ErrNotFound is returned when a job id was never issued.
var ErrNotFound = errors.New("job not found")

// MemoryStore keeps job records in memory and is safe for concurrent use.
// Each running job only ever updates its own entry; the lock serializes
// insert-by-new-key and update-by-existing-key across jobs.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Job
	now  func() time.Time
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]Job),
		now:  time.Now,
	}
}

// Create stores a fresh job record.
func (s *MemoryStore) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = s.now().UTC()
	}
	job.UpdatedAt = job.CreatedAt
	s.byID[job.ID] = job
	return nil
}

// Get returns a job by its id.
func (s *MemoryStore) Get(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// SetStatus moves a job to the given stage with human-readable details.
func (s *MemoryStore) SetStatus(ctx context.Context, jobID string, status Status, details string) error {
	return s.update(ctx, jobID, func(job *Job) {
		job.Status = status
		job.Details = details
	})
}

// Complete marks the job terminal-successful with its aggregate result.
func (s *MemoryStore) Complete(ctx context.Context, jobID string, result *schema.TokenAnalysis) error {
	return s.update(ctx, jobID, func(job *Job) {
		job.Status = StatusComplete
		job.Details = "Analysis complete."
		job.Result = result
	})
}

// Fail marks the job terminal-failed. Error is terminal: no retry, and the
// result stays absent.
func (s *MemoryStore) Fail(ctx context.Context, jobID string, details string) error {
	return s.update(ctx, jobID, func(job *Job) {
		job.Status = StatusError
		job.Details = details
		job.Result = nil
	})
}

func (s *MemoryStore) update(ctx context.Context, jobID string, apply func(job *Job)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.byID[jobID]
	if !ok {
		return ErrNotFound
	}
	apply(&job)
	job.UpdatedAt = s.now().UTC()
	s.byID[jobID] = job
	return nil
}
