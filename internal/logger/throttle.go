package logger

import (
	"sync"
	"time"
)

// Throttle rate-limits diagnostic logging per category. Each category keeps
// its own last-allowed timestamp, so a chatty category cannot silence others.
// The caller owns the instance and injects it where needed; there is no
// package-level state.
type Throttle struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		now:      time.Now,
		last:     make(map[string]time.Time),
	}
}

// NewThrottleWithNow injects a time source for tests.
func NewThrottleWithNow(interval time.Duration, now func() time.Time) *Throttle {
	t := NewThrottle(interval)
	if now != nil {
		t.now = now
	}
	return t
}

// Allow reports whether the category may log now, and if so records the
// timestamp. The first call for a category always passes.
func (t *Throttle) Allow(category string) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if last, ok := t.last[category]; ok && now.Sub(last) < t.interval {
		return false
	}
	t.last[category] = now
	return true
}
