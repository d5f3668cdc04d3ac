package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"shotfold/internal/fold"
)

// JobStatus represents the state of an async conversion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusReading   JobStatus = "reading"
	StatusFolding   JobStatus = "folding"
	StatusWriting   JobStatus = "writing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks one source file through the conversion service.
type Job struct {
	mu sync.Mutex

	ID       string
	Filename string
	Title    string

	Status JobStatus
	Reason string

	Stats fold.Stats

	CreatedAt time.Time
	UpdatedAt time.Time

	fileData []byte
	result   []byte
}

// NewJob builds a queued job for the given upload.
func NewJob(filename, title string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        ContentHashHex([]byte(fmt.Sprintf("%s-%d", filename, now.UnixNano())))[:20],
		Filename:  filename,
		Title:     title,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// SetStatus updates the job state atomically.
func (j *Job) SetStatus(status JobStatus, reason string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Reason = reason
	j.UpdatedAt = time.Now()
}

// SetStats records the fold outcome counts.
func (j *Job) SetStats(stats fold.Stats) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Stats = stats
	j.UpdatedAt = time.Now()
}

// SetResult stores the rendered YAML document.
func (j *Job) SetResult(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.UpdatedAt = time.Now()
}

// Result returns the rendered YAML document, nil until the job has
// completed.
func (j *Job) Result() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// FileData returns the raw uploaded bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID             string            `json:"job_id"`
	Filename       string            `json:"filename"`
	Title          string            `json:"title,omitempty"`
	Status         JobStatus         `json:"status"`
	Reason         string            `json:"reason,omitempty"`
	RowsRead       int               `json:"rows_read"`
	RowsConsidered int               `json:"rows_considered"`
	ShotsAttached  int               `json:"shots_attached"`
	RowsDropped    map[string]int    `json:"rows_dropped,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	var drops map[string]int
	if len(j.Stats.Drops) > 0 {
		drops = make(map[string]int, len(j.Stats.Drops))
		for reason, n := range j.Stats.Drops {
			drops[string(reason)] = n
		}
	}
	return JobSnapshot{
		ID:             j.ID,
		Filename:       j.Filename,
		Title:          j.Title,
		Status:         j.Status,
		Reason:         j.Reason,
		RowsRead:       j.Stats.RowsRead,
		RowsConsidered: j.Stats.RowsConsidered,
		ShotsAttached:  j.Stats.ShotsAttached,
		RowsDropped:    drops,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes jobs that have not been touched within the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		stale := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if stale {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
