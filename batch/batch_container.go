package batch

// Batch is an ordered, fixed-capacity-hint sequence of Records of a single
// payload type. It is not thread-safe and is owned by exactly one job
// goroutine at a time: created empty at the start of each read-process
// cycle, appended to as records are processed, and discarded after the
// writer consumes it.
type Batch struct {
	records []*Record
}

// NewBatch creates an empty batch with room for sizeHint records before the
// backing slice needs to grow.
func NewBatch(sizeHint int) *Batch {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Batch{records: make([]*Record, 0, sizeHint)}
}

// Append adds a record to the end of the batch.
func (b *Batch) Append(r *Record) {
	b.records = append(b.records, r)
}

// Len returns the number of records currently in the batch.
func (b *Batch) Len() int {
	return len(b.records)
}

// Empty reports whether the batch holds no records.
func (b *Batch) Empty() bool {
	return len(b.records) == 0
}

// Records returns the batch's records in accumulation order. The returned
// slice must not be mutated by the caller.
func (b *Batch) Records() []*Record {
	return b.records
}

// Each calls fn for every record in accumulation order.
func (b *Batch) Each(fn func(*Record)) {
	for _, r := range b.records {
		fn(r)
	}
}
