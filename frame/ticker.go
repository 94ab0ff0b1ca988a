package frame

import (
	"context"
	"time"
)

// DefaultRate is the fallback frame rate in Hz.
const DefaultRate = 60

// Ticker is the timer fallback: it flushes its queue at a fixed rate from Run.
// Closures handed to Post run on the same goroutine as the frame callbacks, so
// input handlers and frames never interleave.
type Ticker struct {
	*Queue

	interval time.Duration
	posts    chan func()
}

// NewTicker creates a ticker flushing rate times per second.
func NewTicker(rate int) *Ticker {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Ticker{
		Queue:    NewQueue(SystemClock()),
		interval: time.Second / time.Duration(rate),
		posts:    make(chan func(), 256),
	}
}

// Interval returns the time between flushes.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Post queues fn to run on the Run goroutine. It blocks when the backlog is full.
func (t *Ticker) Post(fn func()) {
	t.posts <- fn
}

// Run flushes the queue every interval until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.posts:
			fn()
		case <-tk.C:
			t.Flush(t.Now())
		}
	}
}
