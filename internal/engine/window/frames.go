package window

import "time"

// frameQueue holds frame callbacks. Callbacks requested while a frame is
// being delivered run on the following frame.
type frameQueue struct {
	pending []func(time.Time)
	spare   []func(time.Time)
}

func (q *frameQueue) request(cb func(time.Time)) {
	q.pending = append(q.pending, cb)
}

// run delivers the callbacks queued before the call and returns how many ran.
func (q *frameQueue) run(now time.Time) int {
	batch := q.pending
	q.pending = q.spare[:0]

	for i, cb := range batch {
		cb(now)
		batch[i] = nil
	}
	q.spare = batch[:0]
	return len(batch)
}

// len returns the number of queued callbacks.
func (q *frameQueue) len() int {
	return len(q.pending)
}
