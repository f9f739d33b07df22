package batch

import "context"

// BatchListener observes the lifecycle of each accumulated Batch.
type BatchListener interface {
	BeforeBatchReading(ctx context.Context)
	AfterBatchProcessing(ctx context.Context, b *Batch)
	AfterBatchWriting(ctx context.Context, b *Batch)
	OnBatchWritingException(ctx context.Context, b *Batch, err error)
}

// CompositeBatchListener fans out BatchListener callbacks to an ordered
// list of delegates, in registration order.
type CompositeBatchListener struct {
	delegates []BatchListener
}

// NewCompositeBatchListener freezes delegates in call order.
func NewCompositeBatchListener(delegates ...BatchListener) *CompositeBatchListener {
	return &CompositeBatchListener{delegates: append([]BatchListener(nil), delegates...)}
}

func (c *CompositeBatchListener) BeforeBatchReading(ctx context.Context) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.BeforeBatchReading(ctx)
	}
}

func (c *CompositeBatchListener) AfterBatchProcessing(ctx context.Context, b *Batch) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.AfterBatchProcessing(ctx, b)
	}
}

func (c *CompositeBatchListener) AfterBatchWriting(ctx context.Context, b *Batch) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.AfterBatchWriting(ctx, b)
	}
}

func (c *CompositeBatchListener) OnBatchWritingException(ctx context.Context, b *Batch, err error) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.OnBatchWritingException(ctx, b, err)
	}
}

var _ BatchListener = (*CompositeBatchListener)(nil)
