package batch

import (
	"context"

	"github.com/aceteam-ai/gobatch/internal/sysenv"
)

// MonitorSink is the JMX-style monitor hook spec.md treats as a generic
// notification sink: RegisterJob is called once per run when
// JobParameters.JMXMonitoring is enabled, and NotifyReportUpdate is called
// when the run reaches STARTED, once per record read (before it is
// processed), and once more after teardown has set the terminal status.
// Each call receives a value copy of the report taken at that moment.
type MonitorSink interface {
	RegisterJob(ctx context.Context, name string)
	NotifyReportUpdate(ctx context.Context, report JobReport)
}

// NoopMonitorSink is the default MonitorSink: it discards every call. A
// null-object implementation must always be acceptable per spec.md §4.8.
type NoopMonitorSink struct{}

func (NoopMonitorSink) RegisterJob(ctx context.Context, name string)            {}
func (NoopMonitorSink) NotifyReportUpdate(ctx context.Context, report JobReport) {}

var _ MonitorSink = NoopMonitorSink{}

// MetricsMonitorSink is a MonitorSink that captures a fresh sysenv snapshot
// alongside every notification and logs it next to the job's counters via
// ActivityFn. There is no metrics backend wired into gobatch (no
// Prometheus/statsd push), so this is the same "log it through the
// activity callback, or fall back to colorized console output" approach
// the teacher uses everywhere else, extended to host resource facts.
type MetricsMonitorSink struct {
	activityFn ActivityFn
}

// NewMetricsMonitorSink returns a MetricsMonitorSink that logs through fn,
// or colorized stdout/stderr if fn is nil.
func NewMetricsMonitorSink(fn ActivityFn) *MetricsMonitorSink {
	return &MetricsMonitorSink{activityFn: fn}
}

func (m *MetricsMonitorSink) RegisterJob(ctx context.Context, name string) {
	snap := sysenv.Capture(ctx)
	logf(m.activityFn, "info", "job %q registered on %s (cpu=%.1f%% mem=%dMB)",
		name, snap.Hostname, snap.CPUPercent, snap.MemUsedMB)
}

func (m *MetricsMonitorSink) NotifyReportUpdate(ctx context.Context, report JobReport) {
	snap := sysenv.Capture(ctx)
	logf(m.activityFn, "info", "job %q status=%s read=%d write=%d filtered=%d errors=%d cpu=%.1f%% mem=%dMB",
		report.Name, report.Status, report.Metrics.ReadCount, report.Metrics.WriteCount,
		report.Metrics.FilterCount, report.Metrics.ErrorCount, snap.CPUPercent, snap.MemUsedMB)
}

var _ MonitorSink = (*MetricsMonitorSink)(nil)
