package batch

import "context"

// PipelineListener observes per-record processing. BeforeRecordProcessing
// threads its return value the same way a Processor chain does: each
// delegate sees the previous delegate's output, and returning ErrFiltered
// mid-chain filters the record before the processor chain even runs.
type PipelineListener interface {
	BeforeRecordProcessing(ctx context.Context, r *Record) (*Record, error)
	AfterRecordProcessing(ctx context.Context, input, output *Record)
	OnRecordProcessingException(ctx context.Context, r *Record, err error)
}

// CompositePipelineListener fans out PipelineListener callbacks to an
// ordered list of delegates, in registration order.
type CompositePipelineListener struct {
	delegates []PipelineListener
}

// NewCompositePipelineListener freezes delegates in call order.
func NewCompositePipelineListener(delegates ...PipelineListener) *CompositePipelineListener {
	return &CompositePipelineListener{delegates: append([]PipelineListener(nil), delegates...)}
}

func (c *CompositePipelineListener) BeforeRecordProcessing(ctx context.Context, r *Record) (*Record, error) {
	if c == nil {
		return r, nil
	}
	cur := r
	for _, d := range c.delegates {
		out, err := d.BeforeRecordProcessing(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = out
	}
	return cur, nil
}

func (c *CompositePipelineListener) AfterRecordProcessing(ctx context.Context, input, output *Record) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.AfterRecordProcessing(ctx, input, output)
	}
}

func (c *CompositePipelineListener) OnRecordProcessingException(ctx context.Context, r *Record, err error) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.OnRecordProcessingException(ctx, r, err)
	}
}

var _ PipelineListener = (*CompositePipelineListener)(nil)
