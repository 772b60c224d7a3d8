package printing

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks a print job through its lifecycle.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobPrinting  JobStatus = "printing"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is a queued receipt waiting for a printer.
type Job struct {
	ID        string    `json:"id"`
	PrinterID string    `json:"printer_id"`
	Status    JobStatus `json:"status"`
	Attempts  int       `json:"attempts"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	img image.Image
}

// Spooler queues rendered receipts and drives them through the
// transport pool with retries.
type Spooler struct {
	manager     *Manager
	pool        *Pool
	maxAttempts int

	jobs []*Job
	mu   sync.Mutex

	onUpdate func(Job)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSpooler starts a spooler worker. maxAttempts bounds how many
// times a job is retried before it is marked failed.
func NewSpooler(manager *Manager, pool *Pool, maxAttempts int) *Spooler {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Spooler{
		manager:     manager,
		pool:        pool,
		maxAttempts: maxAttempts,
		cancel:      cancel,
	}

	s.wg.Add(1)
	go s.worker(ctx)

	return s
}

// OnUpdate registers a callback invoked with a snapshot of every job
// state change.
func (s *Spooler) OnUpdate(fn func(Job)) { s.onUpdate = fn }

// Enqueue queues an image for printing and returns the job id.
func (s *Spooler) Enqueue(printerID string, img image.Image) string {
	job := &Job{
		ID:        uuid.New().String(),
		PrinterID: printerID,
		Status:    JobQueued,
		CreatedAt: time.Now(),
		img:       img,
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	s.notify(job)
	return job.ID
}

func (s *Spooler) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.processNext()
		}
	}
}

func (s *Spooler) processNext() {
	s.mu.Lock()
	var job *Job
	for _, j := range s.jobs {
		if j.Status == JobQueued {
			job = j
			job.Status = JobPrinting
			break
		}
	}
	s.mu.Unlock()

	if job == nil {
		return
	}
	s.notify(job)

	err := s.print(job)

	s.mu.Lock()
	if err != nil {
		job.Attempts++
		job.Error = err.Error()
		if job.Attempts >= s.maxAttempts {
			job.Status = JobFailed
		} else {
			job.Status = JobQueued
		}
	} else {
		job.Status = JobCompleted
		job.Error = ""
	}
	s.mu.Unlock()

	s.notify(job)
}

func (s *Spooler) print(job *Job) error {
	device := s.manager.Get(job.PrinterID)
	if device == nil {
		return fmt.Errorf("printer not found: %s", job.PrinterID)
	}
	return s.pool.PrintImage(device, job.img)
}

func (s *Spooler) notify(job *Job) {
	if s.onUpdate == nil {
		return
	}
	s.mu.Lock()
	snapshot := *job
	s.mu.Unlock()
	s.onUpdate(snapshot)
}

// GetJob returns a copy of the job, or nil when unknown.
func (s *Spooler) GetJob(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.ID == id {
			snapshot := *job
			return &snapshot
		}
	}
	return nil
}

// Jobs returns copies of all jobs, newest last.
func (s *Spooler) Jobs() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Job, len(s.jobs))
	for i, job := range s.jobs {
		snapshot := *job
		out[i] = &snapshot
	}
	return out
}

// ClearFinished drops completed and failed jobs.
func (s *Spooler) ClearFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if job.Status == JobQueued || job.Status == JobPrinting {
			kept = append(kept, job)
		}
	}
	s.jobs = kept
}

// Stop shuts the worker down and waits for it to exit.
func (s *Spooler) Stop() {
	s.cancel()
	s.wg.Wait()
}
