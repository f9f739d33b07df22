package batch

import "context"

// RecordWriterListener observes each write of a Batch (whether the whole
// accumulated batch or a singleton batch retried during batch scanning).
type RecordWriterListener interface {
	BeforeRecordWriting(ctx context.Context, b *Batch)
	AfterRecordWriting(ctx context.Context, b *Batch)
	OnRecordWritingException(ctx context.Context, b *Batch, err error)
}

// CompositeRecordWriterListener fans out RecordWriterListener callbacks to
// an ordered list of delegates, in registration order.
type CompositeRecordWriterListener struct {
	delegates []RecordWriterListener
}

// NewCompositeRecordWriterListener freezes delegates in call order.
func NewCompositeRecordWriterListener(delegates ...RecordWriterListener) *CompositeRecordWriterListener {
	return &CompositeRecordWriterListener{delegates: append([]RecordWriterListener(nil), delegates...)}
}

func (c *CompositeRecordWriterListener) BeforeRecordWriting(ctx context.Context, b *Batch) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.BeforeRecordWriting(ctx, b)
	}
}

func (c *CompositeRecordWriterListener) AfterRecordWriting(ctx context.Context, b *Batch) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.AfterRecordWriting(ctx, b)
	}
}

func (c *CompositeRecordWriterListener) OnRecordWritingException(ctx context.Context, b *Batch, err error) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.OnRecordWritingException(ctx, b, err)
	}
}

var _ RecordWriterListener = (*CompositeRecordWriterListener)(nil)
