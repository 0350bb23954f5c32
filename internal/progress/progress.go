// Package progress estimates training throughput over a sliding window. The
// flow feeds it sample counts while training and reads the rate back for
// verbose progress reporting.
package progress

import (
	"sync"
	"time"
)

type tick struct {
	at time.Time
	n  int64
}

// Tracker keeps a moving window of sample counts.
type Tracker struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	ticks  []tick
	total  int64
}

// New creates a tracker with the given window size.
func New(window time.Duration) *Tracker {
	return &Tracker{
		window: window,
		now:    time.Now,
	}
}

// Add records n samples processed at the current time.
func (t *Tracker) Add(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.total += n
	t.ticks = append(t.ticks, tick{at: now, n: n})
	t.trim(now)
}

// Rate returns the samples per second observed within the window.
func (t *Tracker) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.trim(now)

	if len(t.ticks) == 0 {
		return 0
	}

	var sum int64
	for _, tk := range t.ticks {
		sum += tk.n
	}

	elapsed := now.Sub(t.ticks[0].at)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}

	return float64(sum) / elapsed.Seconds()
}

// Total returns the number of samples recorded since creation.
func (t *Tracker) Total() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.total
}

func (t *Tracker) trim(now time.Time) {
	cutoff := now.Add(-t.window)
	idx := 0
	for idx < len(t.ticks) && t.ticks[idx].at.Before(cutoff) {
		idx++
	}
	t.ticks = t.ticks[idx:]
}
