package queuebridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aceteam-ai/gobatch/batch"
)

// Route maps a predicate over a Record's payload to a destination stream,
// the same fan-out idea as the teacher's jobs:v1:<tag> queue naming,
// generalized from a fixed tag set to arbitrary caller-supplied
// predicates.
type Route struct {
	Match  func(payload any) bool
	Stream string
}

// WriterConfig configures a Writer.
type WriterConfig struct {
	URL          string
	Password     string
	DefaultRoute string // used when no Route matches; empty means unrouted writes fail
	Routes       []Route
}

// Writer is a batch.Writer that appends each record's payload, JSON
// encoded, to a Redis Stream selected by Routes (or DefaultRoute).
// Unmatched records with no DefaultRoute return ErrNoRoute, following the
// teacher's Dead Letter Queue idea of never silently dropping a message:
// here the caller decides what "no route" means instead of a hardcoded
// DLQ.
type Writer struct {
	cfg    WriterConfig
	client *redis.Client
}

// NewWriter returns a Writer for the given config. It does not connect
// until Open is called.
func NewWriter(cfg WriterConfig) *Writer {
	return &Writer{cfg: cfg}
}

func (w *Writer) Open(ctx context.Context) error {
	opts, err := redis.ParseURL(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("queuebridge: parse redis url: %w", err)
	}
	if w.cfg.Password != "" {
		opts.Password = w.cfg.Password
	}
	w.client = redis.NewClient(opts)

	if err := w.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("queuebridge: connect: %w", err)
	}
	return nil
}

// WriteRecords appends each record to its routed stream via XAdd, in batch
// order. It stops at the first record that fails to route, encode, or be
// appended and returns that error: records before it stay written and
// records after it are not attempted, so the caller (or batch scanning, if
// enabled) can isolate the offending record.
func (w *Writer) WriteRecords(ctx context.Context, b *batch.Batch) error {
	var firstErr error
	b.Each(func(r *batch.Record) {
		if firstErr != nil {
			return
		}
		if err := w.writeOne(ctx, r); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

func (w *Writer) writeOne(ctx context.Context, r *batch.Record) error {
	stream := w.route(r.Payload)
	if stream == "" {
		return fmt.Errorf("record #%d: %w", r.Header.Number, batch.ErrNoRoute)
	}

	payloadJSON, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Errorf("queuebridge: marshal record #%d: %w", r.Header.Number, err)
	}

	return w.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"payload": string(payloadJSON),
			"source":  r.Header.Source,
		},
	}).Err()
}

func (w *Writer) route(payload any) string {
	for _, rt := range w.cfg.Routes {
		if rt.Match != nil && rt.Match(payload) {
			return rt.Stream
		}
	}
	return w.cfg.DefaultRoute
}

func (w *Writer) Close(ctx context.Context) error {
	if w.client == nil {
		return nil
	}
	return w.client.Close()
}

var _ batch.Writer = (*Writer)(nil)
