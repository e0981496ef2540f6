package quotas

import (
	"sync"
)

type (
	// CountLimiter enforces a per-key cap on concurrently outstanding
	// acquisitions. It is used to bound the number of queued tasks each
	// owner may hold.
	CountLimiter struct {
		mu     sync.Mutex
		limit  int
		counts map[string]int
	}
)

// NoLimit disables the cap.
const NoLimit = 0

// NewCountLimiter returns a limiter allowing up to limit outstanding
// acquisitions per key. A limit of NoLimit never refuses.
func NewCountLimiter(limit int) *CountLimiter {
	return &CountLimiter{
		limit:  limit,
		counts: make(map[string]int),
	}
}

// TryAcquire reserves one slot for key. It returns false, without reserving,
// when the key is already at its limit.
func (l *CountLimiter) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit != NoLimit && l.counts[key] >= l.limit {
		return false
	}
	l.counts[key]++
	return true
}

// Release returns one slot for key.
func (l *CountLimiter) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[key] <= 1 {
		delete(l.counts, key)
		return
	}
	l.counts[key]--
}

// Count returns the outstanding acquisitions for key.
func (l *CountLimiter) Count(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[key]
}

// Limit returns the configured per-key cap.
func (l *CountLimiter) Limit() int {
	return l.limit
}
