package batch

import (
	"context"
	"io"
)

// Reader is the source contract. The engine calls Open exactly once before
// the first ReadRecord, and calls Close exactly once after the loop
// terminates — but only if Open returned nil; a Reader that never
// successfully opened is never asked to close.
//
// ReadRecord returns io.EOF (wrapped or bare, checked with errors.Is) to
// signal end-of-stream. Any other non-nil error is fatal to the current
// run. Close errors are logged and recorded as JobReport.LastError but
// never change the run's terminal status.
type Reader interface {
	Open(ctx context.Context) error
	ReadRecord(ctx context.Context) (*Record, error)
	Close(ctx context.Context) error
}

// NoopReader is the default Reader used when a Builder is not given one.
// It immediately reports end-of-stream.
type NoopReader struct{}

func (NoopReader) Open(ctx context.Context) error { return nil }

func (NoopReader) ReadRecord(ctx context.Context) (*Record, error) { return nil, io.EOF }

func (NoopReader) Close(ctx context.Context) error { return nil }

var _ Reader = NoopReader{}
