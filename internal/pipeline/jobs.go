package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/specdoc/internal/compose"
	"github.com/dgallion1/specdoc/internal/spec"
)

// JobStatus represents the state of a build job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusBuilding  JobStatus = "building"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document build.
type Job struct {
	mu sync.Mutex

	ID    string    `json:"job_id"`
	Title string    `json:"title"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	payload    *spec.Payload
	result     []byte
	resultHash string
	errors     []string
}

// Progress tracks what the build has emitted so far.
type Progress struct {
	Sections   int      `json:"sections"`
	Paragraphs int      `json:"paragraphs"`
	Tables     int      `json:"tables"`
	Diagrams   int      `json:"diagrams"`
	Errors     []string `json:"errors"`
}

// NewJob creates a queued job for the given payload.
func NewJob(payload *spec.Payload) *Job {
	now := time.Now()
	return &Job{
		ID:        newJobID(),
		Title:     payload.Title,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		payload:   payload,
	}
}

// Payload returns the build input.
func (j *Job) Payload() *spec.Payload {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.payload
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetStats records build counters from a finished compose pass.
func (j *Job) SetStats(stats compose.Stats) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Sections = stats.Sections
	j.Progress.Paragraphs = stats.Paragraphs
	j.Progress.Tables = stats.Tables
	j.Progress.Diagrams = stats.Diagrams
	j.UpdatedAt = time.Now()
}

// SetResult stores the serialized document and its content hash.
func (j *Job) SetResult(data []byte, hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.resultHash = hash
	j.UpdatedAt = time.Now()
}

// Result returns the serialized document and its hash; nil until the job
// completes.
func (j *Job) Result() ([]byte, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.resultHash
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Title    string    `json:"title"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:     j.ID,
		Title:  j.Title,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			Sections:   j.Progress.Sections,
			Paragraphs: j.Progress.Paragraphs,
			Tables:     j.Progress.Tables,
			Diagrams:   j.Progress.Diagrams,
			Errors:     errs,
		},
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
