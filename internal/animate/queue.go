package animate

// FrameQueue is a Scheduler whose callbacks run when the host calls Flush,
// once per display refresh.
type FrameQueue struct {
	pending []func() bool
}

func (q *FrameQueue) RequestFrame(fn func() bool) {
	q.pending = append(q.pending, fn)
}

// Flush runs the callbacks queued so far and reports whether any of them
// drew into the back buffer. The host presents only when it did.
// Callbacks queued while flushing wait for the next Flush.
func (q *FrameQueue) Flush() bool {
	callbacks := q.pending
	q.pending = nil
	drew := false
	for _, fn := range callbacks {
		if fn() {
			drew = true
		}
	}
	return drew
}

func (q *FrameQueue) Len() int {
	return len(q.pending)
}
