package batch

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimitedPassesThroughRecords(t *testing.T) {
	base := &sliceReader{records: []any{1, 2, 3}}
	limited := RateLimited(base, rate.NewLimiter(rate.Inf, 1))

	if err := limited.Open(context.Background()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		rec, err := limited.ReadRecord(context.Background())
		if err != nil {
			t.Fatalf("ReadRecord() error = %v", err)
		}
		if rec.Payload.(int) != i+1 {
			t.Errorf("Payload = %v, want %d", rec.Payload, i+1)
		}
	}
}

func TestRateLimitedRespectsContextCancellation(t *testing.T) {
	base := &sliceReader{records: []any{1, 2, 3}}
	limited := RateLimited(base, rate.NewLimiter(rate.Every(time.Hour), 1))

	// First call consumes the only token immediately available.
	if _, err := limited.ReadRecord(context.Background()); err != nil {
		t.Fatalf("ReadRecord() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := limited.ReadRecord(ctx); err == nil {
		t.Error("expected ReadRecord to fail once ctx is canceled and the bucket is empty")
	}
}
