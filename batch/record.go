// Package batch implements a read-process-write pipeline engine over bounded
// or unbounded record streams.
//
// Architecture:
//
//	Reader -> [batch of Records] -> CompositeProcessor -> Writer
//
// A Job drives one pipeline run: it pulls Records from a Reader up to
// BatchSize at a time, threads each through a chain of Processors, and
// hands the resulting Batch to a Writer. Five listener families observe
// every step. An Executor runs one or more Jobs concurrently.
//
// End-of-stream and filtering are both expressed as sentinel errors
// (io.EOF and ErrFiltered) rather than nullable records, so every contract
// in this package stays a plain (value, error) pair.
package batch

import "time"

// Header is the immutable (except Scanned) envelope attached to every
// Record. Number is unique and strictly increasing within one job run,
// starting at 1.
type Header struct {
	Number  int64
	Source  string
	ReadAt  time.Time
	Scanned bool
}

// Record pairs a Header with a payload. Payload is untyped at the engine
// boundary: the composite processor chain erases intermediate payload
// types, so stage-to-stage type compatibility is a construction-time
// invariant the caller is responsible for, not something the engine can
// check at run time.
type Record struct {
	Header  Header
	Payload any
}

// NewRecord builds a Record with the given header fields already applied
// except Scanned, which always starts false.
func NewRecord(number int64, source string, readAt time.Time, payload any) *Record {
	return &Record{
		Header: Header{
			Number: number,
			Source: source,
			ReadAt: readAt,
		},
		Payload: payload,
	}
}

// scan marks the record as having been retried via batch scanning.
func (r *Record) scan() {
	r.Header.Scanned = true
}
