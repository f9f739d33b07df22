package batch

import "context"

// JobListener observes the start and end of a single job run.
type JobListener interface {
	BeforeJob(ctx context.Context, params JobParameters)
	AfterJob(ctx context.Context, report *JobReport)
}

// CompositeJobListener fans out JobListener callbacks to an ordered list
// of delegates, in registration order. The zero value has no delegates and
// behaves as a no-op.
type CompositeJobListener struct {
	delegates []JobListener
}

// NewCompositeJobListener freezes delegates in call order.
func NewCompositeJobListener(delegates ...JobListener) *CompositeJobListener {
	return &CompositeJobListener{delegates: append([]JobListener(nil), delegates...)}
}

func (c *CompositeJobListener) BeforeJob(ctx context.Context, params JobParameters) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.BeforeJob(ctx, params)
	}
}

func (c *CompositeJobListener) AfterJob(ctx context.Context, report *JobReport) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.AfterJob(ctx, report)
	}
}

var _ JobListener = (*CompositeJobListener)(nil)
