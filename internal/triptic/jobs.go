package triptic

import (
	"fmt"
	"sync"
)

// JobState is the lifecycle state of a background render job.
type JobState string

const (
	JobProcessing JobState = "processing"
	JobComplete   JobState = "complete"
	JobError      JobState = "error"
)

// Job is the poller-visible status of one background render job. Each entry
// is written by exactly one worker goroutine and read-only for pollers
// afterward.
type Job struct {
	Token      string
	GroupID    string
	Slot       SlotName
	State      JobState
	ContentRef string // set when State == JobComplete
	Err        string // set when State == JobError
}

// JobTracker is the process-wide map of background render jobs, created empty
// at startup. Entries are never removed; a caller abandoning the poll simply
// stops polling, and the entry remains until process restart.
type JobTracker struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewJobTracker creates an empty tracker.
func NewJobTracker() *JobTracker {
	return &JobTracker{jobs: make(map[string]Job)}
}

// Begin registers a new processing job under the token.
func (t *JobTracker) Begin(token, groupID string, slot SlotName) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[token] = Job{Token: token, GroupID: groupID, Slot: slot, State: JobProcessing}
}

// Complete marks a job finished with the resulting content reference.
func (t *JobTracker) Complete(token, contentRef string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job := t.jobs[token]
	job.State = JobComplete
	job.ContentRef = contentRef
	t.jobs[token] = job
}

// Fail marks a job failed with the error message.
func (t *JobTracker) Fail(token string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job := t.jobs[token]
	job.State = JobError
	job.Err = err.Error()
	t.jobs[token] = job
}

// Get returns the job for the token, or ErrNotFound.
func (t *JobTracker) Get(token string) (Job, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, ok := t.jobs[token]
	if !ok {
		return Job{}, fmt.Errorf("job %s: %w", token, ErrNotFound)
	}
	return job, nil
}
