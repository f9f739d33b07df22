package batch

// tracker produces the termination signal for a Job's main loop.
// moreRecords starts true and transitions to false exactly once, the
// moment the reader first returns end-of-stream within a batch-build
// cycle. The partial batch already accumulated at that point is still
// processed and written before the loop exits.
type tracker struct {
	moreRecords bool
}

func newTracker() *tracker {
	return &tracker{moreRecords: true}
}

func (t *tracker) hasMore() bool {
	return t.moreRecords
}

func (t *tracker) noMoreRecords() {
	t.moreRecords = false
}
