package batch

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// errExecutorShutdown is returned by Submit/SubmitAll once Shutdown has
// been called: the executor no longer accepts new work.
var errExecutorShutdown = errors.New("batch: executor is shut down")

// JobHandle is the future returned by Submit: the caller can keep doing
// other work and call Wait later for the job's report.
type JobHandle struct {
	done   chan struct{}
	report *JobReport
}

func newJobHandle() *JobHandle {
	return &JobHandle{done: make(chan struct{})}
}

func (h *JobHandle) complete(report *JobReport) {
	h.report = report
	close(h.done)
}

// Wait blocks until the submitted job finishes and returns its report.
func (h *JobHandle) Wait() *JobReport {
	<-h.done
	return h.report
}

// Executor runs many Jobs concurrently, bounded by a fixed worker count
// (default one worker), matching spec.md §4.8. It generalizes the
// teacher's hand-rolled semaphore-plus-WaitGroup loop in
// worker.Runner.Run: a single buffered channel (sem) is the worker pool,
// shared by both Execute and Submit/SubmitAll, and golang.org/x/sync/
// errgroup threads Execute's per-batch dispatch and join.
type Executor struct {
	concurrency int
	activityFn  ActivityFn

	sem chan struct{}
	wg  sync.WaitGroup

	mu       sync.Mutex
	shutdown bool
}

// NewExecutor returns an Executor that runs up to concurrency Jobs at
// once. concurrency <= 0 is treated as 1, matching the teacher's own
// Runner.maxConcurrency fallback.
func NewExecutor(concurrency int) *Executor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Executor{
		concurrency: concurrency,
		sem:         make(chan struct{}, concurrency),
	}
}

// WithActivityFn sets the log sink used for Executor-level messages.
func (e *Executor) WithActivityFn(fn ActivityFn) *Executor {
	e.activityFn = fn
	return e
}

func (e *Executor) log(level, format string, args ...any) {
	logf(e.activityFn, level, format, args...)
}

// Execute runs every job to completion, at most e.concurrency at a time,
// and returns their reports in the same order as jobs. A job whose ctx is
// canceled still yields a report (ABORTED), so Execute itself never
// returns an error: Job.Run already captures every outcome. Execute draws
// from the same worker pool as Submit/SubmitAll, so it blocks if every
// worker is already busy with asynchronously submitted jobs.
func (e *Executor) Execute(ctx context.Context, jobs []*Job) []*JobReport {
	reports := make([]*JobReport, len(jobs))

	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			e.sem <- struct{}{}
			defer func() { <-e.sem }()
			e.log("info", "executor dispatching job %q (%d/%d)", job.Name(), i+1, len(jobs))
			reports[i] = job.Run(ctx)
			return nil
		})
	}

	// Only this package's own job goroutines ever call g.Go, and none of
	// them return a non-nil error, so Wait cannot fail.
	_ = g.Wait()
	return reports
}

// Submit enqueues job for asynchronous execution on a borrowed worker and
// returns immediately with a handle yielding its eventual report. It
// returns errExecutorShutdown once Shutdown has been called.
func (e *Executor) Submit(ctx context.Context, job *Job) (*JobHandle, error) {
	e.mu.Lock()
	if e.shutdown {
		e.mu.Unlock()
		return nil, errExecutorShutdown
	}
	e.wg.Add(1)
	e.mu.Unlock()

	handle := newJobHandle()
	go func() {
		defer e.wg.Done()
		e.sem <- struct{}{}
		defer func() { <-e.sem }()
		e.log("info", "executor dispatching job %q", job.Name())
		handle.complete(job.Run(ctx))
	}()
	return handle, nil
}

// SubmitAll submits each job in order and returns their handles. It stops
// and returns the error as soon as one submission is rejected (the
// executor was shut down mid-batch); handles already obtained remain
// valid and may still be waited on.
func (e *Executor) SubmitAll(ctx context.Context, jobs []*Job) ([]*JobHandle, error) {
	handles := make([]*JobHandle, 0, len(jobs))
	for _, job := range jobs {
		h, err := e.Submit(ctx, job)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// Shutdown stops the executor from accepting new Submit/SubmitAll calls
// and waits for jobs already in flight to finish, or for ctx to be done,
// whichever comes first. Calling Shutdown again is a no-op. On an executor
// that never accepted a submission it returns nil at once, and later
// Submit/SubmitAll calls are still rejected.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.shutdown {
		e.mu.Unlock()
		return nil
	}
	e.shutdown = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
