package batch

import "context"

// RecordReaderListener observes each individual read attempt. It is
// invoked by the end-of-stream record too (err == io.EOF), matching the
// source framework's own behavior (see DESIGN.md open-question 2).
type RecordReaderListener interface {
	BeforeRecordReading(ctx context.Context)
	AfterRecordReading(ctx context.Context, r *Record, err error)
	OnRecordReadingException(ctx context.Context, err error)
}

// CompositeRecordReaderListener fans out RecordReaderListener callbacks to
// an ordered list of delegates, in registration order.
type CompositeRecordReaderListener struct {
	delegates []RecordReaderListener
}

// NewCompositeRecordReaderListener freezes delegates in call order.
func NewCompositeRecordReaderListener(delegates ...RecordReaderListener) *CompositeRecordReaderListener {
	return &CompositeRecordReaderListener{delegates: append([]RecordReaderListener(nil), delegates...)}
}

func (c *CompositeRecordReaderListener) BeforeRecordReading(ctx context.Context) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.BeforeRecordReading(ctx)
	}
}

func (c *CompositeRecordReaderListener) AfterRecordReading(ctx context.Context, r *Record, err error) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.AfterRecordReading(ctx, r, err)
	}
}

func (c *CompositeRecordReaderListener) OnRecordReadingException(ctx context.Context, err error) {
	if c == nil {
		return
	}
	for _, d := range c.delegates {
		d.OnRecordReadingException(ctx, err)
	}
}

var _ RecordReaderListener = (*CompositeRecordReaderListener)(nil)
