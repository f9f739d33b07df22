package batch

import "errors"

// ErrFiltered is returned by a Processor, or by
// PipelineListener.BeforeRecordProcessing, to signal that a record should
// be dropped: downstream processors in the chain are skipped, the record
// is never appended to the batch, and FilterCount is incremented.
var ErrFiltered = errors.New("batch: record filtered")

// ErrThresholdExceeded is the distinguished condition raised when
// cumulative processing errors strictly exceed JobParameters.ErrorThreshold.
// It is always fatal to the run.
var ErrThresholdExceeded = errors.New("batch: error threshold exceeded")

// ErrNoRoute is returned by a queue-bridging writer when a record matches
// no configured predicate.
var ErrNoRoute = errors.New("batch: no route matched record")

// Builder validation errors, returned by Builder.Build.
var (
	errInvalidBatchSize      = errors.New("batch: batchSize must be >= 1")
	errInvalidErrorThreshold = errors.New("batch: errorThreshold must be >= 0")
	errNilArgument           = errors.New("batch: argument must not be nil")
)
