package batch

import (
	"context"
	"errors"
	"testing"
	"time"
)

var fixedTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func upper() ProcessorFunc {
	return func(ctx context.Context, r *Record) (*Record, error) {
		s := r.Payload.(string) + "!"
		return NewRecord(r.Header.Number, r.Header.Source, r.Header.ReadAt, s), nil
	}
}

func TestCompositeProcessorThreadsOutput(t *testing.T) {
	cp := NewCompositeProcessor(upper(), upper())

	out, err := cp.Process(context.Background(), NewRecord(1, "src", fixedTime, "hi"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out.Payload.(string) != "hi!!" {
		t.Errorf("Payload = %q, want %q", out.Payload, "hi!!")
	}
}

func TestCompositeProcessorShortCircuitsOnFilter(t *testing.T) {
	calls := 0
	filterFirst := ProcessorFunc(func(ctx context.Context, r *Record) (*Record, error) {
		calls++
		return nil, ErrFiltered
	})
	neverCalled := ProcessorFunc(func(ctx context.Context, r *Record) (*Record, error) {
		calls++
		return r, nil
	})

	cp := NewCompositeProcessor(filterFirst, neverCalled)
	_, err := cp.Process(context.Background(), NewRecord(1, "src", fixedTime, "x"))

	if !errors.Is(err, ErrFiltered) {
		t.Fatalf("err = %v, want ErrFiltered", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (second stage must not run)", calls)
	}
}

func TestNilCompositeProcessorIsIdentity(t *testing.T) {
	var cp *CompositeProcessor
	rec := NewRecord(1, "src", fixedTime, "x")
	out, err := cp.Process(context.Background(), rec)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out != rec {
		t.Errorf("nil CompositeProcessor did not act as identity")
	}
}
