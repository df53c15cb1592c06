package job

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTick   = 30 * time.Second
	jobRunTimeout = 5 * time.Minute
)

// Job is a named unit of scheduled work. A job's error is logged and
// swallowed; one failing job never stops the scheduler or its peers.
type Job struct {
	Name    string
	Cadence Cadence
	Run     func(ctx context.Context) error

	mu      sync.Mutex
	nextRun time.Time
	lastRun time.Time
	lastErr error
	runs    int
}

// JobStatus is a point-in-time snapshot of a job's bookkeeping.
type JobStatus struct {
	Name    string    `json:"name"`
	Cadence string    `json:"cadence"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run,omitempty"`
	LastErr string    `json:"last_error,omitempty"`
	Runs    int       `json:"runs"`
}

// Scheduler dispatches registered jobs on their cadences from a single
// ticker loop. Jobs run in their own goroutines so a slow job does not
// delay its peers.
type Scheduler struct {
	tracer trace.Tracer
	tick   time.Duration

	mu   sync.Mutex
	jobs []*Job

	stop chan struct{}
	done sync.WaitGroup
}

func NewScheduler(tracer trace.Tracer) *Scheduler {
	return &Scheduler{
		tracer: tracer,
		tick:   defaultTick,
		stop:   make(chan struct{}),
	}
}

func (s *Scheduler) Register(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.nextRun = job.Cadence.NextRun(time.Now())
	s.jobs = append(s.jobs, job)
}

// Start launches the dispatch loop. It returns immediately.
func (s *Scheduler) Start() {
	s.done.Add(1)
	go s.loop()
	log.Printf("scheduler started with %d jobs", len(s.Statuses()))
}

// Stop halts the dispatch loop. In-flight job runs complete on their own.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.done.Wait()
}

// Statuses reports a snapshot of every registered job.
func (s *Scheduler) Statuses() []JobStatus {
	s.mu.Lock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(jobs))
	for _, job := range jobs {
		job.mu.Lock()
		status := JobStatus{
			Name:    job.Name,
			Cadence: job.Cadence.String(),
			NextRun: job.nextRun,
			LastRun: job.lastRun,
			Runs:    job.runs,
		}
		if job.lastErr != nil {
			status.LastErr = job.lastErr.Error()
		}
		job.mu.Unlock()
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *Scheduler) loop() {
	defer s.done.Done()
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.dispatch(now)
		}
	}
}

func (s *Scheduler) dispatch(now time.Time) {
	s.mu.Lock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		job.mu.Lock()
		due := !now.Before(job.nextRun)
		if due {
			// Advance immediately so a long run is not re-dispatched
			// on the next tick.
			job.nextRun = job.Cadence.NextRun(now)
		}
		job.mu.Unlock()
		if due {
			go s.run(job, now)
		}
	}
}

func (s *Scheduler) run(job *Job, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), jobRunTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "job."+job.Name)
	defer span.End()

	err := invoke(ctx, job)
	if err != nil {
		log.Printf("job %s failed: %v", job.Name, err)
	}

	job.mu.Lock()
	job.lastRun = now
	job.lastErr = err
	job.runs++
	job.mu.Unlock()
}

// invoke turns a panic inside a job into its error result, so one bad job
// cannot take down the scheduler goroutine tree with it.
func invoke(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job.Run(ctx)
}
