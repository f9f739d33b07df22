package batch

import "math"

// JobParameters is the recognized configuration for one job run, following
// the teacher's zero-value-defaulting convention (internal/redis.ClientConfig,
// internal/worker.RedisSourceConfig): a caller fills in only what they care
// about and DefaultJobParameters backfills the rest.
type JobParameters struct {
	// BatchSize is the number of records accumulated per write cycle. Must
	// be >= 1.
	BatchSize int

	// ErrorThreshold is the cumulative processing-error budget tolerated
	// before the run fails. Must be >= 0. Defaults to "unbounded".
	ErrorThreshold int

	// JMXMonitoring enables the monitor hook's state-change notifications
	// and process-environment snapshot capture.
	JMXMonitoring bool

	// BatchScanningEnabled switches a writer failure from fatal to
	// recoverable-via-per-record-retry.
	BatchScanningEnabled bool
}

// unboundedErrorThreshold stands in for spec.md's "default infinity".
const unboundedErrorThreshold = math.MaxInt

// DefaultJobParameters returns the spec-mandated defaults: BatchSize 1,
// ErrorThreshold unbounded, JMXMonitoring and BatchScanningEnabled both
// false.
func DefaultJobParameters() JobParameters {
	return JobParameters{
		BatchSize:      1,
		ErrorThreshold: unboundedErrorThreshold,
	}
}

// validate checks the numeric invariants spec.md §6 requires a builder to
// range-check before constructing a job.
func (p JobParameters) validate() error {
	if p.BatchSize < 1 {
		return errInvalidBatchSize
	}
	if p.ErrorThreshold < 0 {
		return errInvalidErrorThreshold
	}
	return nil
}
