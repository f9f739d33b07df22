package batch

import (
	"context"
	"strings"
	"testing"
)

func TestMetricsMonitorSinkLogsReportAndHostFacts(t *testing.T) {
	var lines []string
	sink := NewMetricsMonitorSink(func(level, msg string) {
		lines = append(lines, msg)
	})

	sink.RegisterJob(context.Background(), "nightly-import")
	sink.NotifyReportUpdate(context.Background(), JobReport{
		Name:   "nightly-import",
		Status: JobStatusCompleted,
		Metrics: JobMetrics{
			ReadCount: 10, WriteCount: 9, FilterCount: 1, ErrorCount: 0,
		},
	})

	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "nightly-import") {
		t.Errorf("RegisterJob line = %q, want it to mention the job name", lines[0])
	}
	if !strings.Contains(lines[1], "read=10") || !strings.Contains(lines[1], "write=9") {
		t.Errorf("NotifyReportUpdate line = %q, want read/write counters", lines[1])
	}
}

func TestNoopMonitorSinkDiscardsCalls(t *testing.T) {
	// Must never panic regardless of what's passed in; a null-object
	// implementation must always be acceptable per spec.md §4.8.
	var sink NoopMonitorSink
	sink.RegisterJob(context.Background(), "job")
	sink.NotifyReportUpdate(context.Background(), JobReport{})
}
