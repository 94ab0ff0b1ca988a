// Package frame schedules per-frame callbacks.
//
// A Scheduler never runs a loop on its own behalf: a component re-arms it from
// inside its callback to form a continuous animation loop, and cancels the
// outstanding handle on teardown.
package frame

import (
	"sync"
	"time"
)

// Handle identifies a pending callback. The zero Handle is the empty handle.
type Handle uint64

// Callback receives the frame timestamp, measured from the scheduler's epoch.
type Callback func(now time.Duration)

// Clock reports the current time relative to an arbitrary epoch.
type Clock func() time.Duration

// Scheduler is the frame capability shared by every animated component.
type Scheduler interface {
	// Request schedules cb to run before the next repaint.
	Request(cb Callback) Handle
	// Cancel drops a pending callback. Unknown, fired or already
	// cancelled handles are ignored.
	Cancel(h Handle)
	// Now returns the scheduler's current timestamp.
	Now() time.Duration
}

// SystemClock returns a monotonic Clock starting at zero.
func SystemClock() Clock {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Queue is a host-paced Scheduler: the host calls Flush once per repaint.
type Queue struct {
	mu      sync.Mutex
	clock   Clock
	next    Handle
	order   []Handle
	live    map[Handle]Callback
	lastNow time.Duration
}

// NewQueue creates a queue. A nil clock makes Now report the timestamp of the
// most recent Flush, which gives tests full control over time.
func NewQueue(clock Clock) *Queue {
	return &Queue{
		clock: clock,
		live:  make(map[Handle]Callback),
	}
}

// Request implements Scheduler.
func (q *Queue) Request(cb Callback) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	h := q.next
	q.order = append(q.order, h)
	q.live[h] = cb
	return h
}

// Cancel implements Scheduler.
func (q *Queue) Cancel(h Handle) {
	if h == 0 {
		return
	}
	q.mu.Lock()
	delete(q.live, h)
	q.mu.Unlock()
}

// Now implements Scheduler.
func (q *Queue) Now() time.Duration {
	if q.clock != nil {
		return q.clock()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastNow
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.live)
}

// Flush runs every callback that was pending when Flush was called, in
// request order. Callbacks requested during the flush wait for the next one.
// It returns the number of callbacks run.
func (q *Queue) Flush(now time.Duration) int {
	q.mu.Lock()
	batch := q.order
	q.order = nil
	q.lastNow = now
	q.mu.Unlock()

	ran := 0
	for _, h := range batch {
		q.mu.Lock()
		cb, ok := q.live[h]
		delete(q.live, h)
		q.mu.Unlock()

		// Cancelled by an earlier callback in this batch
		if !ok {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

// Resolve returns the frame provider for the platform, decided once at
// startup: a host-paced Queue when the platform repaints on its own schedule,
// otherwise the fixed-rate Ticker fallback.
func Resolve(hostPaced bool) Scheduler {
	if hostPaced {
		return NewQueue(SystemClock())
	}
	return NewTicker(DefaultRate)
}
