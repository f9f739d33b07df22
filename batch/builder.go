package batch

import "fmt"

// Builder declaratively assembles a Job, following the chained-
// configuration style of spec.md §6 and the teacher's zero-value-
// defaulting config structs (RunnerConfig, RedisSourceConfig). Each setter
// rejects a nil argument by recording a validation error that surfaces
// from Build, rather than panicking.
type Builder struct {
	name string

	reader Reader
	writer Writer

	processors []Processor

	jobListeners      []JobListener
	batchListeners    []BatchListener
	readerListeners   []RecordReaderListener
	pipelineListeners []PipelineListener
	writerListeners   []RecordWriterListener

	// batchSize is a pointer because its valid range (>= 1) and its
	// explicitly-invalid range (<= 0) together cover every int, so no
	// sentinel value can mean "not set": nil is the only way to tell
	// "never called" apart from an explicit BatchSize(0).
	batchSize      *int
	errorThreshold int // -1 means "not set"; valid range is >= 0, so -1 is safe as a sentinel

	jmx      bool
	scanning bool

	monitor    MonitorSink
	activityFn ActivityFn

	err error
}

// NewBuilder returns a Builder with spec-mandated defaults pending.
func NewBuilder() *Builder {
	return &Builder{errorThreshold: -1}
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Named sets the job's name, used in logging and reports.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Reader sets the job's Reader. Passing nil is a validation error.
func (b *Builder) Reader(r Reader) *Builder {
	if r == nil {
		b.setErr(fmt.Errorf("%w: reader", errNilArgument))
		return b
	}
	b.reader = r
	return b
}

// Writer sets the job's Writer. Passing nil is a validation error.
func (b *Builder) Writer(w Writer) *Builder {
	if w == nil {
		b.setErr(fmt.Errorf("%w: writer", errNilArgument))
		return b
	}
	b.writer = w
	return b
}

// Processor appends a stage to the processor chain. Filter, Mapper,
// Validator, and Marshaller are aliases of Processor: spec.md treats them
// as the same contract differing only by convention.
func (b *Builder) Processor(p Processor) *Builder {
	if p == nil {
		b.setErr(fmt.Errorf("%w: processor", errNilArgument))
		return b
	}
	b.processors = append(b.processors, p)
	return b
}

func (b *Builder) Filter(p Processor) *Builder     { return b.Processor(p) }
func (b *Builder) Mapper(p Processor) *Builder     { return b.Processor(p) }
func (b *Builder) Validator(p Processor) *Builder  { return b.Processor(p) }
func (b *Builder) Marshaller(p Processor) *Builder { return b.Processor(p) }

// BatchSize sets JobParameters.BatchSize; validated (>= 1) in Build.
func (b *Builder) BatchSize(n int) *Builder {
	b.batchSize = &n
	return b
}

// ErrorThreshold sets JobParameters.ErrorThreshold; validated (>= 0) in
// Build.
func (b *Builder) ErrorThreshold(n int) *Builder {
	if n < 0 {
		b.setErr(errInvalidErrorThreshold)
		return b
	}
	b.errorThreshold = n
	return b
}

// EnableJMX turns on monitor-hook notifications and environment-snapshot
// capture.
func (b *Builder) EnableJMX() *Builder {
	b.jmx = true
	return b
}

// EnableBatchScanning turns on the per-record retry recovery path for
// writer failures.
func (b *Builder) EnableBatchScanning() *Builder {
	b.scanning = true
	return b
}

func (b *Builder) JobListener(l JobListener) *Builder {
	if l == nil {
		b.setErr(fmt.Errorf("%w: job listener", errNilArgument))
		return b
	}
	b.jobListeners = append(b.jobListeners, l)
	return b
}

func (b *Builder) BatchListener(l BatchListener) *Builder {
	if l == nil {
		b.setErr(fmt.Errorf("%w: batch listener", errNilArgument))
		return b
	}
	b.batchListeners = append(b.batchListeners, l)
	return b
}

func (b *Builder) ReaderListener(l RecordReaderListener) *Builder {
	if l == nil {
		b.setErr(fmt.Errorf("%w: reader listener", errNilArgument))
		return b
	}
	b.readerListeners = append(b.readerListeners, l)
	return b
}

func (b *Builder) PipelineListener(l PipelineListener) *Builder {
	if l == nil {
		b.setErr(fmt.Errorf("%w: pipeline listener", errNilArgument))
		return b
	}
	b.pipelineListeners = append(b.pipelineListeners, l)
	return b
}

func (b *Builder) WriterListener(l RecordWriterListener) *Builder {
	if l == nil {
		b.setErr(fmt.Errorf("%w: writer listener", errNilArgument))
		return b
	}
	b.writerListeners = append(b.writerListeners, l)
	return b
}

// WithMonitor sets the MonitorSink notified when EnableJMX is set.
// Defaults to NoopMonitorSink.
func (b *Builder) WithMonitor(m MonitorSink) *Builder {
	if m == nil {
		b.setErr(fmt.Errorf("%w: monitor", errNilArgument))
		return b
	}
	b.monitor = m
	return b
}

// WithActivityFn sets the job's log sink. Defaults to colorized
// stdout/stderr.
func (b *Builder) WithActivityFn(fn ActivityFn) *Builder {
	b.activityFn = fn
	return b
}

// Build validates accumulated configuration and constructs a Job. The
// delegate lists of every composite listener are copied here, freezing
// them for the lifetime of the Job per spec.md §5.
func (b *Builder) Build() (*Job, error) {
	if b.err != nil {
		return nil, b.err
	}

	params := DefaultJobParameters()
	if b.batchSize != nil {
		params.BatchSize = *b.batchSize
	}
	if b.errorThreshold >= 0 {
		params.ErrorThreshold = b.errorThreshold
	}
	params.JMXMonitoring = b.jmx
	params.BatchScanningEnabled = b.scanning

	if err := params.validate(); err != nil {
		return nil, err
	}

	reader := b.reader
	if reader == nil {
		reader = NoopReader{}
	}
	writer := b.writer
	if writer == nil {
		writer = NoopWriter{}
	}
	monitor := b.monitor
	if monitor == nil {
		monitor = NoopMonitorSink{}
	}

	return &Job{
		name:             b.name,
		reader:           reader,
		writer:           writer,
		processor:        NewCompositeProcessor(b.processors...),
		jobListener:      NewCompositeJobListener(b.jobListeners...),
		batchListener:    NewCompositeBatchListener(b.batchListeners...),
		readerListener:   NewCompositeRecordReaderListener(b.readerListeners...),
		pipelineListener: NewCompositePipelineListener(b.pipelineListeners...),
		writerListener:   NewCompositeRecordWriterListener(b.writerListeners...),
		params:           params,
		monitor:          monitor,
		activityFn:       b.activityFn,
	}, nil
}
