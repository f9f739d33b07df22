package batch

import "time"

// JobMetrics holds the run's mutable counters. It is mutated only by the
// job's own goroutine; a monitor hook observing it concurrently may see
// torn reads on platforms without atomic 64-bit loads, which is an
// accepted tradeoff for observability (spec: readers may see torn values).
type JobMetrics struct {
	ReadCount   int64
	WriteCount  int64
	FilterCount int64
	ErrorCount  int64
	StartTime   time.Time
	EndTime     time.Time
}

// Duration returns EndTime.Sub(StartTime). It is zero until the run has
// finished (EndTime is set during teardown).
func (m JobMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() || m.StartTime.IsZero() {
		return 0
	}
	return m.EndTime.Sub(m.StartTime)
}

// snapshot returns a value copy safe to hand to a monitor sink without
// risking the sink mutating live counters.
func (m JobMetrics) snapshot() JobMetrics {
	return m
}
