package pipeline

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/grafbreak/internal/linebreak"
)

// JobStatus represents the state of a document layout job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusFetching  JobStatus = "fetching"
	StatusParsing   JobStatus = "parsing"
	StatusBreaking  JobStatus = "breaking"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusPartial || s == StatusFailed
}

// ParagraphResult is the layout outcome of one paragraph.
type ParagraphResult struct {
	Index      int              `json:"index"`
	Breadcrumb []string         `json:"breadcrumb,omitempty"`
	Page       int              `json:"page,omitempty"`
	Text       string           `json:"text"`
	Annotated  string           `json:"annotated,omitempty"`
	Positions  []int            `json:"positions,omitempty"`
	Lines      []linebreak.Line `json:"lines,omitempty"`
	Demerits   float64          `json:"demerits"`
	Error      string           `json:"error,omitempty"`
	ErrorKind  string           `json:"error_kind,omitempty"`
}

// Failed reports whether the paragraph could not be laid out.
func (r ParagraphResult) Failed() bool {
	return r.Error != ""
}

// Job tracks the state of a single document.
type Job struct {
	mu sync.Mutex

	ID        string `json:"job_id"`
	SourceURL string `json:"source_url,omitempty"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	results  []ParagraphResult
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalParagraphs  int      `json:"total_paragraphs"`
	ParagraphsBroken int      `json:"paragraphs_broken"`
	ParagraphsFailed int      `json:"paragraphs_failed"`
	Errors           []string `json:"errors"`
}

// NewJob returns a queued job for an uploaded file.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// NewURLJob returns a queued job whose document is fetched by a worker.
func NewURLJob(rawURL string) *Job {
	j := NewJob("", nil)
	j.SourceURL = rawURL
	return j
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

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes jobs not updated within the TTL and returns how many went.
func (s *JobStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
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

// SetTotalParagraphs records how many paragraphs the document holds.
func (j *Job) SetTotalParagraphs(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalParagraphs = n
	j.UpdatedAt = time.Now()
}

// RecordResult stores one paragraph outcome and advances progress.
func (j *Job) RecordResult(r ParagraphResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, r)
	if r.Failed() {
		j.Progress.ParagraphsFailed++
	} else {
		j.Progress.ParagraphsBroken++
	}
	j.UpdatedAt = time.Now()
}

// Results returns the paragraph outcomes in document order.
func (j *Job) Results() []ParagraphResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]ParagraphResult, len(j.results))
	copy(out, j.results)
	slices.SortFunc(out, func(a, b ParagraphResult) int { return a.Index - b.Index })
	return out
}

// SetDocument sets the raw file bytes and the name used to pick a parser.
func (j *Job) SetDocument(filename string, data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Filename = filename
	j.fileData = data
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// ReleaseFileData drops the raw bytes once they are no longer needed.
func (j *Job) ReleaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

func (j *Job) setDocInfo(title, hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Title = title
	j.ContentHash = hash
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	SourceURL   string    `json:"source_url,omitempty"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := slices.Clone(j.Progress.Errors)
	if errs == nil {
		errs = []string{}
	}
	p := j.Progress
	p.Errors = errs
	return JobSnapshot{
		ID:          j.ID,
		SourceURL:   j.SourceURL,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		Progress:    p,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
