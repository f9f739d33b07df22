package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aceteam-ai/gobatch/internal/sysenv"
)

// Job drives one read-process-write pipeline run. It is built by a
// Builder, is not safe for concurrent use, and must not be submitted to an
// Executor (or have Run called) more than once concurrently.
//
// Run implements the state machine of spec.md §4.6: STARTING -> STARTED ->
// STOPPING -> COMPLETED on success, STARTED -> FAILED on a fatal error,
// STARTED -> ABORTED when ctx is canceled. It never panics or returns an
// error directly; every outcome is reflected in the returned JobReport.
type Job struct {
	name string

	reader    Reader
	writer    Writer
	processor Processor

	jobListener      *CompositeJobListener
	batchListener    *CompositeBatchListener
	readerListener   *CompositeRecordReaderListener
	pipelineListener *CompositePipelineListener
	writerListener   *CompositeRecordWriterListener

	params  JobParameters
	monitor MonitorSink

	activityFn ActivityFn

	metrics JobMetrics
	report  JobReport

	recordSeq int64

	readerOpened bool
	writerOpened bool
}

func (j *Job) log(level, format string, args ...any) {
	logf(j.activityFn, level, format, args...)
}

// Run executes the pipeline to completion (or failure, or cancellation)
// and returns the terminal report. ctx cancellation is observed once per
// batch boundary, per spec.md §5.
func (j *Job) Run(ctx context.Context) *JobReport {
	j.metrics = JobMetrics{StartTime: time.Now()}
	j.report = JobReport{Name: j.name, Parameters: j.params, Status: JobStatusStarting}

	if j.params.JMXMonitoring {
		j.report.Environment = sysenv.Capture(ctx)
	}

	j.jobListener.BeforeJob(ctx, j.params)
	if j.params.JMXMonitoring {
		j.monitor.RegisterJob(ctx, j.name)
	}

	j.log("info", "job %q starting", j.name)

	openErr := j.reader.Open(ctx)
	j.readerOpened = openErr == nil
	if openErr == nil {
		openErr = j.writer.Open(ctx)
		j.writerOpened = openErr == nil
	}
	if openErr != nil {
		j.log("error", "job %q failed to open: %v", j.name, openErr)
		return j.teardown(ctx, fmt.Errorf("open: %w", openErr))
	}

	j.report.Status = JobStatusStarted
	j.notifyMonitor(ctx)

	runErr := j.loop(ctx)

	j.report.Status = JobStatusStopping
	return j.teardown(ctx, runErr)
}

// loop is the main read-process-write cycle. It returns a non-nil error
// only for a fatal condition (reader failure, error-threshold exceeded, or
// an unrecoverable writer failure); a context cancellation observed at a
// batch boundary returns nil and lets teardown classify the run as
// ABORTED via ctx.Err().
func (j *Job) loop(ctx context.Context) error {
	tr := newTracker()

	for tr.hasMore() {
		if ctx.Err() != nil {
			return nil
		}

		j.batchListener.BeforeBatchReading(ctx)
		b := NewBatch(j.params.BatchSize)

		for i := 0; i < j.params.BatchSize; i++ {
			rec, err := j.readRecord(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					tr.noMoreRecords()
					break
				}
				return fmt.Errorf("reader failed: %w", err)
			}
			j.metrics.ReadCount++

			if err := j.processRecord(ctx, b, rec); err != nil {
				return err
			}
		}

		j.batchListener.AfterBatchProcessing(ctx, b)

		if err := j.writeBatch(ctx, b); err != nil {
			return err
		}
	}

	return nil
}

// readRecord wraps reader.ReadRecord with the reader-listener callbacks.
// A non-EOF error is rethrown: reader failures are always fatal.
func (j *Job) readRecord(ctx context.Context) (*Record, error) {
	j.readerListener.BeforeRecordReading(ctx)

	rec, err := j.reader.ReadRecord(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Fired with the end-of-stream error, matching the source
			// framework's own behavior (see DESIGN.md open question 2).
			j.readerListener.AfterRecordReading(ctx, nil, err)
			return nil, err
		}
		j.readerListener.OnRecordReadingException(ctx, err)
		return nil, err
	}

	// Record numbers are assigned by the engine, not trusted from the
	// reader, so the uniqueness/ordering invariant (spec.md §3) holds
	// regardless of which Reader implementation is plugged in.
	j.recordSeq++
	rec.Header.Number = j.recordSeq
	if rec.Header.ReadAt.IsZero() {
		rec.Header.ReadAt = time.Now()
	}

	j.readerListener.AfterRecordReading(ctx, rec, nil)
	return rec, nil
}

// processRecord runs the pipeline-listener pre-hook and the processor
// chain for one record, appending the result to b on success. It returns
// a non-nil error only when ErrThresholdExceeded fires.
func (j *Job) processRecord(ctx context.Context, b *Batch, rec *Record) error {
	j.notifyMonitor(ctx)

	out, err := j.pipelineListener.BeforeRecordProcessing(ctx, rec)
	filtered := false
	if err != nil {
		if errors.Is(err, ErrFiltered) {
			filtered = true
		} else {
			return j.handleProcessingError(ctx, rec, err)
		}
	}

	var finalOut *Record
	if !filtered {
		out2, err2 := j.processor.Process(ctx, out)
		if err2 != nil {
			if errors.Is(err2, ErrFiltered) {
				filtered = true
			} else {
				return j.handleProcessingError(ctx, rec, err2)
			}
		} else {
			finalOut = out2
		}
	}

	j.pipelineListener.AfterRecordProcessing(ctx, rec, finalOut)

	if filtered {
		j.metrics.FilterCount++
		return nil
	}

	b.Append(finalOut)
	return nil
}

// handleProcessingError records a processing error and escalates to
// ErrThresholdExceeded once the cumulative count strictly exceeds the
// configured threshold.
func (j *Job) handleProcessingError(ctx context.Context, rec *Record, err error) error {
	j.pipelineListener.OnRecordProcessingException(ctx, rec, err)
	j.metrics.ErrorCount++
	j.report.LastError = err
	j.log("warning", "job %q processing error (count=%d): %v", j.name, j.metrics.ErrorCount, err)

	if int(j.metrics.ErrorCount) > j.params.ErrorThreshold {
		return fmt.Errorf("%w: %v", ErrThresholdExceeded, err)
	}
	return nil
}

// writeBatch writes a non-empty batch, falling back to batch scanning on
// failure when enabled. It returns a non-nil error only when the write
// fails and batch scanning is disabled.
func (j *Job) writeBatch(ctx context.Context, b *Batch) error {
	if b.Empty() {
		return nil
	}

	j.writerListener.BeforeRecordWriting(ctx, b)
	err := j.writer.WriteRecords(ctx, b)
	if err == nil {
		j.writerListener.AfterRecordWriting(ctx, b)
		j.batchListener.AfterBatchWriting(ctx, b)
		j.metrics.WriteCount += int64(b.Len())
		return nil
	}

	j.writerListener.OnRecordWritingException(ctx, b, err)
	j.batchListener.OnBatchWritingException(ctx, b, err)
	j.report.LastError = err

	if !j.params.BatchScanningEnabled {
		return fmt.Errorf("writer failed: %w", err)
	}

	j.log("warning", "job %q batch write failed, scanning %d records individually: %v", j.name, b.Len(), err)
	j.scanBatch(ctx, b)
	return nil
}

// scanBatch retries a failed batch one record at a time. Per spec.md §4.7
// and DESIGN.md's open-question decisions: successful singleton writes do
// NOT fire batchListener.AfterBatchWriting, and failed singleton writes are
// never checked against ErrorThreshold.
func (j *Job) scanBatch(ctx context.Context, b *Batch) {
	for _, rec := range b.Records() {
		rec.scan()

		singleton := NewBatch(1)
		singleton.Append(rec)

		j.writerListener.BeforeRecordWriting(ctx, singleton)
		err := j.writer.WriteRecords(ctx, singleton)
		if err == nil {
			j.writerListener.AfterRecordWriting(ctx, singleton)
			j.metrics.WriteCount++
			continue
		}

		j.writerListener.OnRecordWritingException(ctx, singleton, err)
		j.metrics.ErrorCount++
		j.report.LastError = err
		j.log("error", "job %q scan write failed for record #%d: %v", j.name, rec.Header.Number, err)
	}
}

// teardown closes the reader and writer (best-effort, never fatal),
// determines the terminal status, and fires the remaining JobListener and
// monitor callbacks.
func (j *Job) teardown(ctx context.Context, runErr error) *JobReport {
	var closeErr error
	if j.readerOpened {
		if err := j.reader.Close(ctx); err != nil {
			closeErr = fmt.Errorf("reader close: %w", err)
			j.log("warning", "job %q reader close failed: %v", j.name, err)
		}
	}
	if j.writerOpened {
		if err := j.writer.Close(ctx); err != nil {
			closeErr = fmt.Errorf("writer close: %w", err)
			j.log("warning", "job %q writer close failed: %v", j.name, err)
		}
	}

	switch {
	case runErr != nil:
		j.report.LastError = runErr
		j.report.Status = JobStatusFailed
	case ctx.Err() != nil:
		if closeErr != nil {
			j.report.LastError = closeErr
		}
		j.report.Status = JobStatusAborted
	default:
		if closeErr != nil {
			j.report.LastError = closeErr
		}
		j.report.Status = JobStatusCompleted
	}

	j.metrics.EndTime = time.Now()
	j.report.Metrics = j.metrics

	j.notifyMonitor(ctx)
	j.jobListener.AfterJob(ctx, &j.report)

	switch j.report.Status {
	case JobStatusCompleted:
		j.log("success", "job %q completed (%v)", j.name, j.report.Metrics.Duration())
	case JobStatusAborted:
		j.log("warning", "job %q aborted (%v)", j.name, j.report.Metrics.Duration())
	default:
		j.log("error", "job %q failed: %v", j.name, j.report.LastError)
	}

	return &j.report
}

func (j *Job) notifyMonitor(ctx context.Context) {
	if !j.params.JMXMonitoring || j.monitor == nil {
		return
	}
	rep := j.report
	rep.Metrics = j.metrics
	j.monitor.NotifyReportUpdate(ctx, rep.snapshot())
}

// Name returns the job's configured name.
func (j *Job) Name() string {
	return j.name
}
