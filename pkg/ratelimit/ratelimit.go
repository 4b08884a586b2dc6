package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window request limiter keyed by an arbitrary string
// (typically the client IP).
type Limiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	window  time.Duration
	maxHits int

	// now is swappable for tests
	now func() time.Time
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		hits:    make(map[string][]time.Time),
		window:  window,
		maxHits: maxHits,
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether it stays within the
// configured window budget.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Drop hits that have aged out of the window
	if hits, exists := l.hits[key]; exists {
		valid := hits[:0]
		for _, hit := range hits {
			if hit.After(windowStart) {
				valid = append(valid, hit)
			}
		}
		l.hits[key] = valid
	}

	if len(l.hits[key]) >= l.maxHits {
		return false
	}

	l.hits[key] = append(l.hits[key], now)
	return true
}
