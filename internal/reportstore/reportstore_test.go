package reportstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aceteam-ai/gobatch/batch"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "reports.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(name string, status batch.JobStatus, lastErr error) *batch.JobReport {
	start := time.Now().Add(-time.Second)
	return &batch.JobReport{
		Name:   name,
		Status: status,
		Metrics: batch.JobMetrics{
			ReadCount:   10,
			WriteCount:  9,
			FilterCount: 1,
			ErrorCount:  0,
			StartTime:   start,
			EndTime:     start.Add(time.Second),
		},
		LastError: lastErr,
	}
}

func TestRecordAndRecentByName(t *testing.T) {
	s := openTestStore(t)

	if err := s.Record(sampleReport("nightly-import", batch.JobStatusCompleted, nil)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Record(sampleReport("nightly-import", batch.JobStatusFailed, errors.New("boom"))); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	records, err := s.RecentByName("nightly-import", 10)
	if err != nil {
		t.Fatalf("RecentByName() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Newest first.
	if records[0].Status != string(batch.JobStatusFailed) {
		t.Errorf("records[0].Status = %q, want %q", records[0].Status, batch.JobStatusFailed)
	}
	if records[0].LastError != "boom" {
		t.Errorf("records[0].LastError = %q, want %q", records[0].LastError, "boom")
	}
	if records[1].Status != string(batch.JobStatusCompleted) {
		t.Errorf("records[1].Status = %q, want %q", records[1].Status, batch.JobStatusCompleted)
	}
	if records[1].ReadCount != 10 {
		t.Errorf("records[1].ReadCount = %d, want 10", records[1].ReadCount)
	}
}

func TestRecentByNameFiltersByJobName(t *testing.T) {
	s := openTestStore(t)

	if err := s.Record(sampleReport("job-a", batch.JobStatusCompleted, nil)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Record(sampleReport("job-b", batch.JobStatusCompleted, nil)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	records, err := s.RecentByName("job-a", 10)
	if err != nil {
		t.Fatalf("RecentByName() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "job-a" {
		t.Errorf("records = %+v, want exactly one job-a record", records)
	}
}
