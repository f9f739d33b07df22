package batch

import "context"

// Writer is the sink contract. WriteRecords is only ever called with a
// non-empty batch and must either write the whole batch or fail for the
// whole batch — atomicity, if advertised, is the writer's own
// responsibility. A failure is recoverable via batch scanning if the job
// enables it; otherwise it is fatal to the run. Close is called exactly
// once, but only if Open returned nil: a Writer that was never
// successfully opened is never asked to close.
type Writer interface {
	Open(ctx context.Context) error
	WriteRecords(ctx context.Context, b *Batch) error
	Close(ctx context.Context) error
}

// NoopWriter is the default Writer used when a Builder is not given one.
// It silently discards every batch.
type NoopWriter struct{}

func (NoopWriter) Open(ctx context.Context) error { return nil }

func (NoopWriter) WriteRecords(ctx context.Context, b *Batch) error { return nil }

func (NoopWriter) Close(ctx context.Context) error { return nil }

var _ Writer = NoopWriter{}
