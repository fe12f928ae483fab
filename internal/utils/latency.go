package utils

import (
	"slices"
	"sync"
	"time"
)

// LatencyTracker keeps the most recent duration samples in a ring and
// answers percentile queries over them.
type LatencyTracker struct {
	mu     sync.Mutex
	ring   []time.Duration
	next   int
	filled bool
	total  uint64
}

// NewLatencyTracker creates a tracker remembering up to size samples.
func NewLatencyTracker(size int) *LatencyTracker {
	if size <= 0 {
		size = 256
	}
	return &LatencyTracker{ring: make([]time.Duration, size)}
}

// Observe records d, overwriting the oldest sample once the ring is full.
func (l *LatencyTracker) Observe(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ring[l.next] = d
	l.next = (l.next + 1) % len(l.ring)
	if l.next == 0 {
		l.filled = true
	}
	l.total++
}

// Count returns the number of samples currently held.
func (l *LatencyTracker) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size()
}

// Total returns how many samples were ever observed.
func (l *LatencyTracker) Total() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Percentile returns the p-th percentile (0-100) of the held samples, or zero
// when empty.
func (l *LatencyTracker) Percentile(p float64) time.Duration {
	l.mu.Lock()
	n := l.size()
	if n == 0 {
		l.mu.Unlock()
		return 0
	}
	sorted := slices.Clone(l.ring[:n])
	l.mu.Unlock()

	slices.Sort(sorted)
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}
	return sorted[int(p/100*float64(n-1))]
}

func (l *LatencyTracker) size() int {
	if l.filled {
		return len(l.ring)
	}
	return l.next
}
