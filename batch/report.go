package batch

import "github.com/aceteam-ai/gobatch/internal/sysenv"

// JobStatus is the terminal (or in-flight) state of a job run.
type JobStatus string

const (
	JobStatusStarting  JobStatus = "STARTING"
	JobStatusStarted   JobStatus = "STARTED"
	JobStatusStopping  JobStatus = "STOPPING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusAborted   JobStatus = "ABORTED"
)

// JobReport is the public result of a Job run. It is mutated only by the
// job's own goroutine while the run is in flight; a monitor hook reading
// it concurrently must copy rather than mutate (see Job.notifyMonitor for
// how snapshots are handed out).
type JobReport struct {
	Name        string
	Status      JobStatus
	Parameters  JobParameters
	Metrics     JobMetrics
	LastError   error
	Environment sysenv.Snapshot
}

// snapshot returns a value copy of the report, safe to publish to a
// monitor sink without exposing the live struct to concurrent mutation.
func (r *JobReport) snapshot() JobReport {
	cp := *r
	cp.Metrics = r.Metrics.snapshot()
	return cp
}
