package batch

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuilderDefaults(t *testing.T) {
	job, err := NewBuilder().Named("defaults").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if job.params.BatchSize != 1 {
		t.Errorf("BatchSize = %d, want 1", job.params.BatchSize)
	}
	if job.params.ErrorThreshold != unboundedErrorThreshold {
		t.Errorf("ErrorThreshold = %d, want unbounded", job.params.ErrorThreshold)
	}
	if _, ok := job.reader.(NoopReader); !ok {
		t.Errorf("reader = %T, want NoopReader", job.reader)
	}
	if _, ok := job.writer.(NoopWriter); !ok {
		t.Errorf("writer = %T, want NoopWriter", job.writer)
	}
}

func TestBuilderRejectsNilReader(t *testing.T) {
	_, err := NewBuilder().Reader(nil).Build()
	if !errors.Is(err, errNilArgument) {
		t.Fatalf("err = %v, want errNilArgument", err)
	}
}

func TestBuilderRejectsNilWriter(t *testing.T) {
	_, err := NewBuilder().Writer(nil).Build()
	if !errors.Is(err, errNilArgument) {
		t.Fatalf("err = %v, want errNilArgument", err)
	}
}

func TestBuilderRejectsInvalidBatchSize(t *testing.T) {
	_, err := NewBuilder().BatchSize(0).Build()
	if !errors.Is(err, errInvalidBatchSize) {
		t.Fatalf("err = %v, want errInvalidBatchSize", err)
	}
}

func TestBuilderRejectsNegativeBatchSize(t *testing.T) {
	_, err := NewBuilder().BatchSize(-5).Build()
	if !errors.Is(err, errInvalidBatchSize) {
		t.Fatalf("err = %v, want errInvalidBatchSize", err)
	}
}

func TestBuilderUnsetBatchSizeDefaultsToOne(t *testing.T) {
	job, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if job.params.BatchSize != 1 {
		t.Errorf("BatchSize = %d, want 1", job.params.BatchSize)
	}
}

func TestBuilderExplicitZeroErrorThresholdIsValid(t *testing.T) {
	job, err := NewBuilder().ErrorThreshold(0).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if job.params.ErrorThreshold != 0 {
		t.Errorf("ErrorThreshold = %d, want 0", job.params.ErrorThreshold)
	}
}

func TestBuilderFirstErrorWins(t *testing.T) {
	b := NewBuilder().Reader(nil).Writer(nil)
	_, err := b.Build()
	if !errors.Is(err, errNilArgument) {
		t.Fatalf("err = %v, want errNilArgument", err)
	}
	// The reader error (recorded first) must be the one surfaced, not the
	// writer error recorded on the next chained call.
	if !strings.HasSuffix(err.Error(), ": reader") {
		t.Fatalf("err = %q, want the reader error", err.Error())
	}
}

func TestBuilderWiresListenersAndProcessors(t *testing.T) {
	var calls []string
	var listenerCalls int

	pl := ProcessorFunc(func(ctx context.Context, r *Record) (*Record, error) {
		calls = append(calls, "process")
		return r, nil
	})

	job, err := NewBuilder().
		Reader(&sliceReader{records: []any{1}}).
		Processor(pl).
		BatchListener(&funcBatchListener{
			afterBatchProcessing: func(ctx context.Context, b *Batch) { listenerCalls++ },
		}).
		BatchSize(10).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	job.Run(context.Background())

	if len(calls) != 1 {
		t.Errorf("processor called %d times, want 1", len(calls))
	}
	if listenerCalls != 1 {
		t.Errorf("batch listener called %d times, want 1", listenerCalls)
	}
}
